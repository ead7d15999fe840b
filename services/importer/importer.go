package importer

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"time"

	"storefront-backend/lib/telemetry"
	"storefront-backend/services/catalog/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("storefront.services.importer")

// Fixed input paths, relative to the data directory.
const (
	collectionsFile    = "collections.json"
	categoriesFile     = "categories.json"
	subcollectionsFile = "subcollections.json"
	subcategoriesFile  = "subcategories.json"
	productsFile       = "products.json"
)

type Options struct {
	// DataDir holds the export files.
	DataDir string
	// ChunkSize overrides DefaultChunkSize when positive.
	ChunkSize int
}

// Importer runs the one-shot catalog import. Entity imports execute
// strictly in dependency order; re-running against a non-empty store
// is not supported.
type Importer struct {
	db        *sql.DB
	qry       *db.Queries
	dataDir   string
	chunkSize int
}

func New(database *sql.DB, options Options) Importer {
	chunkSize := options.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return Importer{
		db:        database,
		qry:       db.New(database),
		dataDir:   options.DataDir,
		chunkSize: chunkSize,
	}
}

type EntityCount struct {
	Entity   string
	Read     int
	Inserted int
	Dropped  int
}

type Summary struct {
	Entities []EntityCount
	Elapsed  time.Duration
}

// Run imports every entity in dependency order: collections,
// categories, subcollections, subcategories, products. Parent foreign
// keys are rewritten through the remapping built from the parent's
// inserted rows; records whose parent cannot be resolved are dropped
// with a warning. Any other failure aborts the run, leaving the store
// partially populated.
func (im Importer) Run(ctx context.Context) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	start := time.Now()
	var summary Summary

	collectionRemap, count, err := im.importCollections(ctx)
	if err != nil {
		return summary, im.fail(ctx, "collections", err)
	}
	summary.Entities = append(summary.Entities, count)

	categorySlugs, count, err := im.importCategories(ctx, collectionRemap)
	if err != nil {
		return summary, im.fail(ctx, "categories", err)
	}
	summary.Entities = append(summary.Entities, count)

	subcollectionRemap, count, err := im.importSubcollections(ctx, categorySlugs)
	if err != nil {
		return summary, im.fail(ctx, "subcollections", err)
	}
	summary.Entities = append(summary.Entities, count)

	subcategorySlugs, count, err := im.importSubcategories(ctx, subcollectionRemap)
	if err != nil {
		return summary, im.fail(ctx, "subcategories", err)
	}
	summary.Entities = append(summary.Entities, count)

	count, err = im.importProducts(ctx, subcategorySlugs)
	if err != nil {
		return summary, im.fail(ctx, "products", err)
	}
	summary.Entities = append(summary.Entities, count)

	summary.Elapsed = time.Since(start)
	span.SetAttributes(attribute.Int64("elapsed_ms", summary.Elapsed.Milliseconds()))
	return summary, nil
}

func (im Importer) fail(ctx context.Context, entity string, err error) error {
	slog.ErrorContext(ctx, "import aborted, the store may be partially populated",
		"entity", entity,
		"err", err,
	)
	return err
}

func (im Importer) path(name string) string {
	return filepath.Join(im.dataDir, name)
}

func (im Importer) importCollections(ctx context.Context) (Remap, EntityCount, error) {
	ctx, span := tracer.Start(ctx, "importCollections")
	defer span.End()

	count := EntityCount{Entity: "collections"}

	records, err := ReadRecords[CollectionRecord](im.path(collectionsFile))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read collection records")
		return nil, count, err
	}
	count.Read = len(records)

	count.Inserted, err = insertInChunks(ctx, im.db, "collections", records, im.chunkSize,
		func(ctx context.Context, qry *db.Queries, rec CollectionRecord) error {
			return qry.CreateCollection(ctx, db.CreateCollectionParams{
				Name: rec.Name,
				Slug: rec.Slug,
			})
		})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert collections")
		return nil, count, err
	}

	refs, err := im.qry.GetCollectionRefs(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read back collection rows")
		return nil, count, err
	}
	bySlug := make(map[string]int64, len(refs))
	for _, r := range refs {
		bySlug[r.Slug] = r.ID
	}

	external := make([]externalRef, 0, len(records))
	for _, rec := range records {
		external = append(external, externalRef{id: rec.ID, key: rec.Slug})
	}
	return buildRemap(ctx, "collections", bySlug, external), count, nil
}

func (im Importer) importCategories(ctx context.Context, collections Remap) (map[string]struct{}, EntityCount, error) {
	ctx, span := tracer.Start(ctx, "importCategories")
	defer span.End()

	count := EntityCount{Entity: "categories"}

	records, err := ReadRecords[CategoryRecord](im.path(categoriesFile))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read category records")
		return nil, count, err
	}
	count.Read = len(records)

	type resolved struct {
		rec          CategoryRecord
		collectionID int64
	}
	keep := make([]resolved, 0, len(records))
	for _, rec := range records {
		internal, ok := collections[rec.CollectionID]
		if !ok {
			slog.WarnContext(ctx, "dropping category with unresolved collection",
				"slug", rec.Slug,
				"collection_external_id", rec.CollectionID,
			)
			count.Dropped++
			continue
		}
		keep = append(keep, resolved{rec: rec, collectionID: internal})
	}

	count.Inserted, err = insertInChunks(ctx, im.db, "categories", keep, im.chunkSize,
		func(ctx context.Context, qry *db.Queries, r resolved) error {
			return qry.CreateCategory(ctx, db.CreateCategoryParams{
				Slug:         r.rec.Slug,
				Name:         r.rec.Name,
				CollectionID: r.collectionID,
				ImageUrl:     nullString(r.rec.ImageURL),
			})
		})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert categories")
		return nil, count, err
	}

	slugs := make(map[string]struct{}, len(keep))
	for _, r := range keep {
		slugs[r.rec.Slug] = struct{}{}
	}
	return slugs, count, nil
}

func (im Importer) importSubcollections(ctx context.Context, categorySlugs map[string]struct{}) (Remap, EntityCount, error) {
	ctx, span := tracer.Start(ctx, "importSubcollections")
	defer span.End()

	count := EntityCount{Entity: "subcollections"}

	records, err := ReadRecords[SubcollectionRecord](im.path(subcollectionsFile))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read subcollection records")
		return nil, count, err
	}
	count.Read = len(records)

	keep := make([]SubcollectionRecord, 0, len(records))
	for _, rec := range records {
		_, ok := categorySlugs[rec.CategorySlug]
		if !ok {
			slog.WarnContext(ctx, "dropping subcollection with unresolved category",
				"name", rec.Name,
				"category_slug", rec.CategorySlug,
			)
			count.Dropped++
			continue
		}
		keep = append(keep, rec)
	}

	count.Inserted, err = insertInChunks(ctx, im.db, "subcollections", keep, im.chunkSize,
		func(ctx context.Context, qry *db.Queries, rec SubcollectionRecord) error {
			return qry.CreateSubcollection(ctx, db.CreateSubcollectionParams{
				Name:         rec.Name,
				CategorySlug: rec.CategorySlug,
			})
		})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert subcollections")
		return nil, count, err
	}

	refs, err := im.qry.GetSubcollectionRefs(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read back subcollection rows")
		return nil, count, err
	}
	byKey := make(map[string]int64, len(refs))
	for _, r := range refs {
		byKey[subcollectionKey(r.Name, r.CategorySlug)] = r.ID
	}

	external := make([]externalRef, 0, len(records))
	for _, rec := range records {
		external = append(external, externalRef{
			id:  rec.ID,
			key: subcollectionKey(rec.Name, rec.CategorySlug),
		})
	}
	return buildRemap(ctx, "subcollections", byKey, external), count, nil
}

func (im Importer) importSubcategories(ctx context.Context, subcollections Remap) (map[string]struct{}, EntityCount, error) {
	ctx, span := tracer.Start(ctx, "importSubcategories")
	defer span.End()

	count := EntityCount{Entity: "subcategories"}

	records, err := ReadRecords[SubcategoryRecord](im.path(subcategoriesFile))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read subcategory records")
		return nil, count, err
	}
	count.Read = len(records)

	type resolved struct {
		rec             SubcategoryRecord
		subcollectionID int64
	}
	keep := make([]resolved, 0, len(records))
	for _, rec := range records {
		internal, ok := subcollections[rec.SubcollectionID]
		if !ok {
			slog.WarnContext(ctx, "dropping subcategory with unresolved subcollection",
				"slug", rec.Slug,
				"subcollection_external_id", rec.SubcollectionID,
			)
			count.Dropped++
			continue
		}
		keep = append(keep, resolved{rec: rec, subcollectionID: internal})
	}

	count.Inserted, err = insertInChunks(ctx, im.db, "subcategories", keep, im.chunkSize,
		func(ctx context.Context, qry *db.Queries, r resolved) error {
			return qry.CreateSubcategory(ctx, db.CreateSubcategoryParams{
				Slug:            r.rec.Slug,
				Name:            r.rec.Name,
				SubcollectionID: r.subcollectionID,
				ImageUrl:        nullString(r.rec.ImageURL),
			})
		})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert subcategories")
		return nil, count, err
	}

	slugs := make(map[string]struct{}, len(keep))
	for _, r := range keep {
		slugs[r.rec.Slug] = struct{}{}
	}
	return slugs, count, nil
}

// products are the largest export by far, so they stream through the
// chunk writer instead of being materialized up front.
func (im Importer) importProducts(ctx context.Context, subcategorySlugs map[string]struct{}) (EntityCount, error) {
	ctx, span := tracer.Start(ctx, "importProducts")
	defer span.End()

	count := EntityCount{Entity: "products"}

	writer := NewChunkWriter(im.db, "products", im.chunkSize,
		func(ctx context.Context, qry *db.Queries, rec ProductRecord) error {
			return qry.CreateProduct(ctx, db.CreateProductParams{
				Slug:            rec.Slug,
				Name:            rec.Name,
				Description:     rec.Description,
				Price:           rec.Price,
				SubcategorySlug: rec.SubcategorySlug,
				ImageUrl:        nullString(rec.ImageURL),
			})
		})

	err := StreamRecords(im.path(productsFile), func(rec ProductRecord) error {
		count.Read++
		_, ok := subcategorySlugs[rec.SubcategorySlug]
		if !ok {
			slog.WarnContext(ctx, "dropping product with unresolved subcategory",
				"slug", rec.Slug,
				"subcategory_slug", rec.SubcategorySlug,
			)
			count.Dropped++
			return nil
		}
		return writer.Add(ctx, rec)
	})
	if err == nil {
		err = writer.Flush(ctx)
	}
	count.Inserted = writer.Written()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to import products")
		return count, err
	}
	return count, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
