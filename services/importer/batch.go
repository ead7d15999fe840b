package importer

import (
	"context"
	"database/sql"
	"log/slog"

	"storefront-backend/services/catalog/db"
)

// DefaultChunkSize is the number of rows written per transaction.
const DefaultChunkSize = 100

// ChunkWriter accumulates records and writes them to the store in
// fixed-size contiguous chunks, each chunk as one transaction. A
// failed chunk aborts the run; chunks already committed stay
// committed.
type ChunkWriter[T any] struct {
	db     *sql.DB
	entity string
	size   int
	insert func(context.Context, *db.Queries, T) error

	pending []T
	chunk   int
	written int
}

func NewChunkWriter[T any](
	database *sql.DB,
	entity string,
	size int,
	insert func(context.Context, *db.Queries, T) error,
) *ChunkWriter[T] {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &ChunkWriter[T]{
		db:     database,
		entity: entity,
		size:   size,
		insert: insert,
	}
}

// Add queues a record, flushing automatically once a full chunk has
// accumulated.
func (w *ChunkWriter[T]) Add(ctx context.Context, rec T) error {
	w.pending = append(w.pending, rec)
	if len(w.pending) < w.size {
		return nil
	}
	return w.Flush(ctx)
}

// Flush writes any queued records as one transaction.
func (w *ChunkWriter[T]) Flush(ctx context.Context) error {
	if len(w.pending) == 0 {
		return nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := db.New(tx)

	for _, rec := range w.pending {
		err := w.insert(ctx, txqry, rec)
		if err != nil {
			return err
		}
	}
	err = tx.Commit()
	if err != nil {
		return err
	}

	w.written += len(w.pending)
	w.chunk++
	w.pending = w.pending[:0]
	slog.InfoContext(ctx, "inserted chunk",
		"entity", w.entity,
		"chunk", w.chunk,
		"rows", w.written,
	)
	return nil
}

// Written reports the cumulative number of committed rows.
func (w *ChunkWriter[T]) Written() int {
	return w.written
}

// insertInChunks writes an already-materialized record slice through a
// ChunkWriter and returns the committed row count.
func insertInChunks[T any](
	ctx context.Context,
	database *sql.DB,
	entity string,
	records []T,
	size int,
	insert func(context.Context, *db.Queries, T) error,
) (int, error) {
	w := NewChunkWriter(database, entity, size, insert)
	for _, rec := range records {
		err := w.Add(ctx, rec)
		if err != nil {
			return w.Written(), err
		}
	}
	err := w.Flush(ctx)
	return w.Written(), err
}
