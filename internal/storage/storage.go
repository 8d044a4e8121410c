// Package storage defines the persistence interface for the document catalog.
package storage

import (
	"context"

	"github.com/pratham-bits/Shiksha-Setu/internal/models"
)

// Filter holds the structured criteria for a catalog search. An empty Query
// means filter-only listing; empty filter fields match everything.
type Filter struct {
	Query        string
	DocumentType string
	Category     string
	Department   string
}

// Store defines catalog persistence operations.
type Store interface {
	// Document operations
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id int64) (*models.Document, error)
	ListDocuments(ctx context.Context) ([]*models.Document, error)
	ReplaceAll(ctx context.Context, docs []*models.Document) error

	// SearchDocuments runs the LIKE-based catalog search with weighted
	// relevance ordering. Results are ordered most relevant first.
	SearchDocuments(ctx context.Context, f Filter) ([]*models.Document, error)

	// Facets
	Categories(ctx context.Context) ([]string, error)
	DocumentTypes(ctx context.Context) ([]string, error)
	Departments(ctx context.Context) ([]string, error)

	CountDocuments(ctx context.Context) (int64, error)

	Close() error
}
