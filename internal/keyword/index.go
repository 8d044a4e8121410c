// Package keyword provides keyword search indexing over the document catalog.
package keyword

import (
	"context"

	"github.com/pratham-bits/Shiksha-Setu/internal/models"
)

// Filters restricts a keyword search to documents with matching facet values.
// Empty fields match everything.
type Filters struct {
	DocumentType string
	Category     string
	Department   string
}

// Index defines keyword search operations.
type Index interface {
	Index(ctx context.Context, doc *models.Document) error
	Search(ctx context.Context, query string, limit int, f Filters) ([]*Result, error)
	Delete(ctx context.Context, id int64) error
	// DocCount returns the total number of documents in the index.
	DocCount() (uint64, error)
	Close() error
}

// Result is a single keyword search hit.
type Result struct {
	ID    int64
	Score float64
}
