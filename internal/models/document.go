// Package models defines core data structures for documents, queries, and search results.
package models

// Document is a single record in the education-policy catalog.
// JSON field names match the wire format of the /api/search and
// /api/document/{id} endpoints.
type Document struct {
	ID              int64  `json:"id" yaml:"id"`
	Title           string `json:"title" yaml:"title"`
	Content         string `json:"content" yaml:"content"`
	DocumentType    string `json:"document_type" yaml:"document_type"`
	Category        string `json:"category,omitempty" yaml:"category"`
	SubCategory     string `json:"sub_category,omitempty" yaml:"sub_category"`
	Department      string `json:"department,omitempty" yaml:"department"`
	CreatedDate     string `json:"created_date,omitempty" yaml:"created_date"`
	LastUpdated     string `json:"last_updated,omitempty" yaml:"last_updated"`
	Status          string `json:"status,omitempty" yaml:"status"`
	Jurisdiction    string `json:"jurisdiction,omitempty" yaml:"jurisdiction"`
	Keywords        string `json:"keywords,omitempty" yaml:"keywords"`
	DocumentURL     string `json:"document_url,omitempty" yaml:"document_url"`
	SearchPriority  int    `json:"search_priority,omitempty" yaml:"search_priority"`
	FullTextContent string `json:"full_text_content,omitempty" yaml:"full_text_content"`
}

// DocumentResponse is the envelope for GET /api/document/{id}.
type DocumentResponse struct {
	Success  bool      `json:"success"`
	Document *Document `json:"document,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// DocumentsResponse is the envelope for GET /api/documents.
type DocumentsResponse struct {
	Success   bool        `json:"success"`
	Documents []*Document `json:"documents"`
	Error     string      `json:"error,omitempty"`
}

// FacetResponse is the envelope for the category/type/department listings.
type FacetResponse struct {
	Success bool     `json:"success"`
	Values  []string `json:"values"`
	Error   string   `json:"error,omitempty"`
}
