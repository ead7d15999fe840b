package main

import (
	"database/sql"
	"net/http"

	"storefront-backend/services/catalog"
	"storefront-backend/services/catalog/db"

	"github.com/go-chi/chi/v5"
)

func InitCatalog(router chi.Router, config Config) error {
	database, err := config.CatalogDatabase.OpenDB(db.Schema)
	if err != nil {
		return err
	}

	service := catalog.NewService(database, catalog.Options{
		DevMode: config.DevMode,
	})

	router.Get("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		collections, err := service.Collections(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load collections")
			return
		}
		writeJSON(w, http.StatusOK, collections)
	})

	router.Get("/api/categories/{slug}", func(w http.ResponseWriter, r *http.Request) {
		page, err := service.CategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err == sql.ErrNoRows {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load category")
			return
		}
		writeJSON(w, http.StatusOK, page)
	})

	router.Get("/api/subcategories/{slug}", func(w http.ResponseWriter, r *http.Request) {
		page, err := service.SubcategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err == sql.ErrNoRows {
			writeError(w, http.StatusNotFound, "subcategory not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load subcategory")
			return
		}
		writeJSON(w, http.StatusOK, page)
	})

	router.Get("/api/products/{slug}", func(w http.ResponseWriter, r *http.Request) {
		product, err := service.ProductBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err == sql.ErrNoRows {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load product")
			return
		}
		writeJSON(w, http.StatusOK, product)
	})

	router.Get("/api/search", func(w http.ResponseWriter, r *http.Request) {
		results, err := service.SearchProducts(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
		writeJSON(w, http.StatusOK, results)
	})

	router.Get("/api/product-count", func(w http.ResponseWriter, r *http.Request) {
		count, err := service.ProductCount(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to count products")
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"count": count})
	})

	return nil
}
