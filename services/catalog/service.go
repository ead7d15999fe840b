package catalog

import (
	"context"
	"database/sql"
	"time"

	"storefront-backend/lib/cache"
	"storefront-backend/lib/telemetry"
	"storefront-backend/services/catalog/db"

	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("storefront.services.catalog")

// revalidateWindow is how long cached read results are served before
// being recomputed.
const revalidateWindow = time.Hour * 2

// searchResultLimit caps the number of combined rows a search returns.
const searchResultLimit = 5

type Options struct {
	// DevMode bypasses every read cache so changes show up
	// immediately during development.
	DevMode bool
}

type Service struct {
	db  *sql.DB
	qry *db.Queries

	collections  *cache.Cache[[]CollectionWithCategories]
	category     *cache.Cache[CategoryPage]
	subcategory  *cache.Cache[SubcategoryPage]
	product      *cache.Cache[db.Product]
	search       *cache.Cache[[]SearchResult]
	productCount *cache.Cache[int64]
}

func NewService(database *sql.DB, options Options) Service {
	newCache := func(name string) cache.Options {
		return cache.Options{
			Name:       name,
			Revalidate: revalidateWindow,
			Bypass:     options.DevMode,
		}
	}
	return Service{
		db:           database,
		qry:          db.New(database),
		collections:  cache.New[[]CollectionWithCategories](newCache("catalog.collections")),
		category:     cache.New[CategoryPage](newCache("catalog.category")),
		subcategory:  cache.New[SubcategoryPage](newCache("catalog.subcategory")),
		product:      cache.New[db.Product](newCache("catalog.product")),
		search:       cache.New[[]SearchResult](newCache("catalog.search")),
		productCount: cache.New[int64](newCache("catalog.product_count")),
	}
}

type CollectionWithCategories struct {
	Collection db.Collection `json:"collection"`
	Categories []db.Category `json:"categories"`
}

// Collections returns every collection with its categories, for the
// front page.
func (s Service) Collections(ctx context.Context) ([]CollectionWithCategories, error) {
	return s.collections.Get(ctx, "all", func(ctx context.Context) ([]CollectionWithCategories, error) {
		ctx, span := tracer.Start(ctx, "Collections")
		defer span.End()

		collections, err := s.qry.GetCollections(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to read collections")
			return nil, err
		}
		categories, err := s.qry.GetCategories(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to read categories")
			return nil, err
		}

		byCollection := make(map[int64][]db.Category, len(collections))
		for _, c := range categories {
			byCollection[c.CollectionID] = append(byCollection[c.CollectionID], c)
		}

		out := make([]CollectionWithCategories, 0, len(collections))
		for _, c := range collections {
			out = append(out, CollectionWithCategories{
				Collection: c,
				Categories: byCollection[c.ID],
			})
		}
		return out, nil
	})
}

type SubcollectionWithSubcategories struct {
	Subcollection db.Subcollection `json:"subcollection"`
	Subcategories []db.Subcategory `json:"subcategories"`
}

type CategoryPage struct {
	Category       db.Category                      `json:"category"`
	Subcollections []SubcollectionWithSubcategories `json:"subcollections"`
}

// CategoryBySlug returns a category plus its subcollections and their
// subcategories.
func (s Service) CategoryBySlug(ctx context.Context, slug string) (CategoryPage, error) {
	return s.category.Get(ctx, slug, func(ctx context.Context) (CategoryPage, error) {
		ctx, span := tracer.Start(ctx, "CategoryBySlug")
		defer span.End()

		category, err := s.qry.GetCategoryBySlug(ctx, slug)
		if err != nil {
			if err != sql.ErrNoRows {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to read category")
			}
			return CategoryPage{}, err
		}
		subcollections, err := s.qry.GetSubcollectionsByCategorySlug(ctx, slug)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to read subcollections")
			return CategoryPage{}, err
		}
		subcategories, err := s.qry.GetSubcategoriesByCategorySlug(ctx, slug)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to read subcategories")
			return CategoryPage{}, err
		}

		bySubcollection := make(map[int64][]db.Subcategory, len(subcollections))
		for _, sc := range subcategories {
			bySubcollection[sc.SubcollectionID] = append(bySubcollection[sc.SubcollectionID], sc)
		}

		page := CategoryPage{Category: category}
		for _, sub := range subcollections {
			page.Subcollections = append(page.Subcollections, SubcollectionWithSubcategories{
				Subcollection: sub,
				Subcategories: bySubcollection[sub.ID],
			})
		}
		return page, nil
	})
}

type SubcategoryPage struct {
	Subcategory db.Subcategory `json:"subcategory"`
	Products    []db.Product   `json:"products"`
}

// SubcategoryBySlug returns a subcategory plus its products.
func (s Service) SubcategoryBySlug(ctx context.Context, slug string) (SubcategoryPage, error) {
	return s.subcategory.Get(ctx, slug, func(ctx context.Context) (SubcategoryPage, error) {
		ctx, span := tracer.Start(ctx, "SubcategoryBySlug")
		defer span.End()

		subcategory, err := s.qry.GetSubcategoryBySlug(ctx, slug)
		if err != nil {
			if err != sql.ErrNoRows {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to read subcategory")
			}
			return SubcategoryPage{}, err
		}
		products, err := s.qry.GetProductsBySubcategorySlug(ctx, slug)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to read products")
			return SubcategoryPage{}, err
		}
		return SubcategoryPage{Subcategory: subcategory, Products: products}, nil
	})
}

// ProductBySlug returns a single product row.
func (s Service) ProductBySlug(ctx context.Context, slug string) (db.Product, error) {
	return s.product.Get(ctx, slug, func(ctx context.Context) (db.Product, error) {
		ctx, span := tracer.Start(ctx, "ProductBySlug")
		defer span.End()

		product, err := s.qry.GetProductBySlug(ctx, slug)
		if err != nil && err != sql.ErrNoRows {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to read product")
		}
		return product, err
	})
}

// ProductCount returns the total number of products in the catalog.
func (s Service) ProductCount(ctx context.Context) (int64, error) {
	return s.productCount.Get(ctx, "all", func(ctx context.Context) (int64, error) {
		ctx, span := tracer.Start(ctx, "ProductCount")
		defer span.End()

		count, err := s.qry.CountProducts(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to count products")
		}
		return count, err
	})
}

type SearchResult struct {
	Product      db.Product `json:"product"`
	CategorySlug string     `json:"category_slug"`
}

// SearchProducts matches every whitespace-separated term of query
// against product names and returns at most 5 rows joined to their
// catalog ancestors. A query with no terms returns an empty result
// without touching the store.
func (s Service) SearchProducts(ctx context.Context, query string) ([]SearchResult, error) {
	preds := searchPredicates(query)
	if len(preds) == 0 {
		return []SearchResult{}, nil
	}

	return s.search.Get(ctx, query, func(ctx context.Context) ([]SearchResult, error) {
		ctx, span := tracer.Start(ctx, "SearchProducts")
		defer span.End()

		stmt, args := buildSearchQuery(preds, searchResultLimit)
		rows, err := s.db.QueryContext(ctx, stmt, args...)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "search query failed")
			return nil, err
		}
		defer rows.Close()

		results := []SearchResult{}
		for rows.Next() {
			var r SearchResult
			err := rows.Scan(
				&r.Product.Slug,
				&r.Product.Name,
				&r.Product.Description,
				&r.Product.Price,
				&r.Product.SubcategorySlug,
				&r.Product.ImageUrl,
				&r.CategorySlug,
			)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to scan search row")
				return nil, err
			}
			results = append(results, r)
		}
		if err := rows.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "search row iteration failed")
			return nil, err
		}
		return results, nil
	})
}
