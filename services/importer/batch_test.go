package importer

import (
	"context"
	"testing"

	"storefront-backend/lib/testutil"
	"storefront-backend/services/catalog/db"

	"github.com/stretchr/testify/require"
)

func TestChunkWriterFlushesFullChunks(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/importer",
		DbSchema: db.Schema,
	})
	defer cleanup()

	ctx := context.Background()
	writer := NewChunkWriter(res.DB, "collections", 2,
		func(ctx context.Context, qry *db.Queries, rec CollectionRecord) error {
			return qry.CreateCollection(ctx, db.CreateCollectionParams{
				Name: rec.Name,
				Slug: rec.Slug,
			})
		})

	err := writer.Add(ctx, CollectionRecord{Name: "A", Slug: "a"})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 0, writer.Written())

	// second record completes a chunk, which commits on its own
	err = writer.Add(ctx, CollectionRecord{Name: "B", Slug: "b"})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 2, writer.Written())

	err = writer.Add(ctx, CollectionRecord{Name: "C", Slug: "c"})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 2, writer.Written())

	err = writer.Flush(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 3, writer.Written())

	rows, err := db.New(res.DB).GetCollections(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, rows, 3)
}

func TestChunkWriterKeepsCommittedChunksOnFailure(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/importer",
		DbSchema: db.Schema,
	})
	defer cleanup()

	ctx := context.Background()
	records := []CollectionRecord{
		{Name: "A", Slug: "a"},
		{Name: "B", Slug: "b"},
		{Name: "C", Slug: "c"},
		// duplicate slug violates the unique constraint and fails
		// the second chunk
		{Name: "A again", Slug: "a"},
	}

	written, err := insertInChunks(ctx, res.DB, "collections", records, 2,
		func(ctx context.Context, qry *db.Queries, rec CollectionRecord) error {
			return qry.CreateCollection(ctx, db.CreateCollectionParams{
				Name: rec.Name,
				Slug: rec.Slug,
			})
		})
	require.Error(t, err)
	require.Equal(t, 2, written)

	rows, err := db.New(res.DB).GetCollections(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, rows, 2)
}
