package models

// SearchResult is a single search hit: the document plus an optional
// similarity score in [0,1]. A zero score means the hit came from the
// filter/keyword-match path and carries no ranking signal.
type SearchResult struct {
	Document
	SimilarityScore float64 `json:"similarity_score,omitempty"`
}

// SearchResponse is the envelope for POST /api/search.
type SearchResponse struct {
	Success bool           `json:"success"`
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
	Error   string         `json:"error,omitempty"`
}
