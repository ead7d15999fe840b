package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"storefront-backend/lib/testutil"
	"storefront-backend/services/catalog/db"

	"github.com/stretchr/testify/require"
)

func setup(t testing.TB, options Options) (Service, *db.Queries, func()) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/catalog",
		DbSchema: db.Schema,
	})
	return NewService(res.DB, options), db.New(res.DB), cleanup
}

// seedCatalog writes a two-collection hierarchy and returns the
// internal id of the "Screws" subcollection.
func seedCatalog(t testing.TB, qry *db.Queries) int64 {
	ctx := context.Background()

	mustExec := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}

	mustExec(qry.CreateCollection(ctx, db.CreateCollectionParams{Name: "Hardware", Slug: "hardware"}))
	mustExec(qry.CreateCollection(ctx, db.CreateCollectionParams{Name: "Electrical", Slug: "electrical"}))

	mustExec(qry.CreateCategory(ctx, db.CreateCategoryParams{
		Slug: "fasteners", Name: "Fasteners", CollectionID: 1,
	}))
	mustExec(qry.CreateCategory(ctx, db.CreateCategoryParams{
		Slug: "wiring", Name: "Wiring", CollectionID: 2,
	}))

	mustExec(qry.CreateSubcollection(ctx, db.CreateSubcollectionParams{
		Name: "Screws", CategorySlug: "fasteners",
	}))
	refs, err := qry.GetSubcollectionRefs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, refs, 1)
	screwsID := refs[0].ID

	mustExec(qry.CreateSubcategory(ctx, db.CreateSubcategoryParams{
		Slug: "wood-screws", Name: "Wood Screws", SubcollectionID: screwsID,
	}))

	mustExec(qry.CreateProduct(ctx, db.CreateProductParams{
		Slug: "cabinet-screw", Name: "Cabinet Screw",
		Description: "Fine thread.", Price: 5.99, SubcategorySlug: "wood-screws",
	}))
	mustExec(qry.CreateProduct(ctx, db.CreateProductParams{
		Slug: "scabbard-hook", Name: "Scabbard Hook",
		Description: "Wall mounted.", Price: 12.50, SubcategorySlug: "wood-screws",
	}))

	return screwsID
}

func TestCollections(t *testing.T) {
	service, qry, cleanup := setup(t, Options{})
	defer cleanup()
	seedCatalog(t, qry)

	out, err := service.Collections(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, out, 2)
	// collections order by name, each carrying only its own categories
	require.Equal(t, "Electrical", out[0].Collection.Name)
	require.Len(t, out[0].Categories, 1)
	require.Equal(t, "wiring", out[0].Categories[0].Slug)
	require.Equal(t, "Hardware", out[1].Collection.Name)
	require.Len(t, out[1].Categories, 1)
	require.Equal(t, "fasteners", out[1].Categories[0].Slug)
}

func TestCategoryBySlug(t *testing.T) {
	service, qry, cleanup := setup(t, Options{})
	defer cleanup()
	screwsID := seedCatalog(t, qry)

	page, err := service.CategoryBySlug(context.Background(), "fasteners")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "Fasteners", page.Category.Name)
	require.Len(t, page.Subcollections, 1)
	require.Equal(t, screwsID, page.Subcollections[0].Subcollection.ID)
	require.Len(t, page.Subcollections[0].Subcategories, 1)
	require.Equal(t, "wood-screws", page.Subcollections[0].Subcategories[0].Slug)

	_, err = service.CategoryBySlug(context.Background(), "no-such")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSubcategoryBySlug(t *testing.T) {
	service, qry, cleanup := setup(t, Options{})
	defer cleanup()
	seedCatalog(t, qry)

	page, err := service.SubcategoryBySlug(context.Background(), "wood-screws")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "Wood Screws", page.Subcategory.Name)
	require.Len(t, page.Products, 2)

	_, err = service.SubcategoryBySlug(context.Background(), "no-such")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestProductBySlug(t *testing.T) {
	service, qry, cleanup := setup(t, Options{})
	defer cleanup()
	seedCatalog(t, qry)

	product, err := service.ProductBySlug(context.Background(), "cabinet-screw")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "Cabinet Screw", product.Name)

	_, err = service.ProductBySlug(context.Background(), "no-such")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestProductCount(t *testing.T) {
	service, qry, cleanup := setup(t, Options{})
	defer cleanup()
	seedCatalog(t, qry)

	count, err := service.ProductCount(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(2), count)
}

func TestSearchProducts(t *testing.T) {
	service, qry, cleanup := setup(t, Options{})
	defer cleanup()
	seedCatalog(t, qry)

	ctx := context.Background()

	// empty query never reaches the store
	results, err := service.SearchProducts(ctx, "   ")
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, results)

	// prefix match catches Cabinet Screw but not Scabbard Hook
	results, err = service.SearchProducts(ctx, "cab")
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, results, 1)
	require.Equal(t, "cabinet-screw", results[0].Product.Slug)
	require.Equal(t, "fasteners", results[0].CategorySlug)

	// short terms match anywhere, so both rows come back
	results, err = service.SearchProducts(ctx, "ab")
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, results, 2)
	require.Equal(t, "Cabinet Screw", results[0].Product.Name)
	require.Equal(t, "Scabbard Hook", results[1].Product.Name)

	// all terms must match
	results, err = service.SearchProducts(ctx, "cabinet hook")
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, results)
}

func TestSearchProductsLimit(t *testing.T) {
	service, qry, cleanup := setup(t, Options{})
	defer cleanup()
	seedCatalog(t, qry)

	ctx := context.Background()
	for i := 0; i < 8; i++ {
		err := qry.CreateProduct(ctx, db.CreateProductParams{
			Slug:            fmt.Sprintf("bolt-%d", i),
			Name:            fmt.Sprintf("Bolt %d", i),
			Description:     "Hex head.",
			Price:           0.5,
			SubcategorySlug: "wood-screws",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	results, err := service.SearchProducts(ctx, "bolt")
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, results, 5)
}

func TestReadCaching(t *testing.T) {
	service, qry, cleanup := setup(t, Options{})
	defer cleanup()
	seedCatalog(t, qry)

	ctx := context.Background()
	count, err := service.ProductCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(2), count)

	err = qry.CreateProduct(ctx, db.CreateProductParams{
		Slug: "late", Name: "Late Arrival", Description: "x",
		Price: 1, SubcategorySlug: "wood-screws",
	})
	if err != nil {
		t.Fatal(err)
	}

	// still the cached value inside the revalidation window
	count, err = service.ProductCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(2), count)
}

func TestDevModeBypassesCache(t *testing.T) {
	service, qry, cleanup := setup(t, Options{DevMode: true})
	defer cleanup()
	seedCatalog(t, qry)

	ctx := context.Background()
	count, err := service.ProductCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(2), count)

	err = qry.CreateProduct(ctx, db.CreateProductParams{
		Slug: "late", Name: "Late Arrival", Description: "x",
		Price: 1, SubcategorySlug: "wood-screws",
	})
	if err != nil {
		t.Fatal(err)
	}

	count, err = service.ProductCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(3), count)
}
