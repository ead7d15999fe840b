package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"storefront-backend/lib/configuration"
	"storefront-backend/services/catalog/db"
	"storefront-backend/services/importer"
)

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func writeRecords[T any](path string, records []T) {
	f, err := os.Create(path)
	if err != nil {
		fatal(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range records {
		err := enc.Encode(rec)
		if err != nil {
			fatal(err)
		}
	}
	fmt.Printf("wrote %d records to %s\n", len(records), path)
}

// seedFixtures writes a small synthetic catalog export under data/
// for exercising cmd/import against a local store.
func seedFixtures() {
	err := os.MkdirAll("data", 0755)
	if err != nil {
		fatal(err)
	}

	writeRecords(filepath.Join("data", "collections.json"), []importer.CollectionRecord{
		{ID: 1, Name: "Hardware", Slug: "hardware"},
		{ID: 2, Name: "Electrical", Slug: "electrical"},
	})
	writeRecords(filepath.Join("data", "categories.json"), []importer.CategoryRecord{
		{Name: "Fasteners", Slug: "fasteners", CollectionID: 1},
		{Name: "Wiring", Slug: "wiring", CollectionID: 2},
	})
	writeRecords(filepath.Join("data", "subcollections.json"), []importer.SubcollectionRecord{
		{ID: 10, Name: "Screws", CategorySlug: "fasteners"},
		{ID: 11, Name: "Cable", CategorySlug: "wiring"},
	})
	writeRecords(filepath.Join("data", "subcategories.json"), []importer.SubcategoryRecord{
		{Name: "Wood Screws", Slug: "wood-screws", SubcollectionID: 10},
		{Name: "Ethernet Cable", Slug: "ethernet-cable", SubcollectionID: 11},
	})
	writeRecords(filepath.Join("data", "products.json"), []importer.ProductRecord{
		{
			Slug:            "wood-screw-2in",
			Name:            "2in Wood Screw",
			Description:     "Coarse thread, 100 count box.",
			Price:           7.99,
			SubcategorySlug: "wood-screws",
		},
		{
			Slug:            "cat6-50ft",
			Name:            "Cat6 Cable 50ft",
			Description:     "Snagless, 550MHz.",
			Price:           18.50,
			SubcategorySlug: "ethernet-cable",
		},
	})
}

// applySchema creates (or migrates forward) the catalog schema on a
// local sqlite file, for running the server without a remote store.
func applySchema() {
	database, err := configuration.Libsql{File: "catalog.db"}.OpenDB(db.Schema)
	if err != nil {
		fatal(err)
	}
	defer database.Close()
	fmt.Println("applied catalog schema to catalog.db")
}
