// Package store provides the memory storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/aimemo/internal/model"
)

var (
	// ErrInvalidArgument indicates a malformed request parameter, such as
	// a non-positive limit or a category outside the taxonomy.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorageFailure indicates the durable medium failed. The
	// triggering call is fatal; retry policy is the caller's.
	ErrStorageFailure = errors.New("storage failure")
)

// SearchParams holds parameters for searching memories.
type SearchParams struct {
	Namespace string
	Query     string
	Tags      []string       // match any: results share at least one tag
	Category  model.Category // empty means no category filter
	Limit     int            // must be > 0
}

// Store defines the memory storage interface. Implementations must be safe
// for concurrent use: writes serialized, reads concurrent, and a Save in
// progress never visible as a partial record to a concurrent Search.
type Store interface {
	// Save inserts or overwrites a memory by ID. Overwriting is not an
	// error (idempotent upsert).
	Save(ctx context.Context, m *model.Memory) error

	// Search returns up to Limit memories in the namespace whose content
	// contains the query as a substring, optionally filtered by tags and
	// category. Result order is store-defined; callers needing relevance
	// ranking use the retriever.
	Search(ctx context.Context, p SearchParams) ([]model.Memory, error)

	// Clear deletes all memories in the namespace. A namespace with no
	// memories is a no-op, not an error.
	Clear(ctx context.Context, namespace string) error

	// Close closes the store.
	Close() error
}
