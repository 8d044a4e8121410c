package models

import "strings"

// SearchQuery is the body of POST /api/search. All three fields are always
// serialized, even when empty, to match the wire format the endpoint expects.
type SearchQuery struct {
	Query        string `json:"query"`
	DocumentType string `json:"document_type"`
	Category     string `json:"category"`
}

// Normalize trims surrounding whitespace from the query text.
func (q *SearchQuery) Normalize() {
	q.Query = strings.TrimSpace(q.Query)
}

// HasFilters reports whether any structured filter is set.
func (q *SearchQuery) HasFilters() bool {
	return q.DocumentType != "" || q.Category != ""
}
