package models

import (
	"encoding/json"
	"testing"
)

func TestSearchQueryNormalize(t *testing.T) {
	q := SearchQuery{Query: "  education policy  "}
	q.Normalize()
	if q.Query != "education policy" {
		t.Errorf("query = %q", q.Query)
	}
}

func TestSearchQueryHasFilters(t *testing.T) {
	tests := []struct {
		name string
		q    SearchQuery
		want bool
	}{
		{"none", SearchQuery{Query: "x"}, false},
		{"type", SearchQuery{DocumentType: "Policy"}, true},
		{"category", SearchQuery{Category: "Scholarships"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.HasFilters(); got != tt.want {
				t.Errorf("HasFilters = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchQueryWireFormat(t *testing.T) {
	// Empty filters must still be serialized; the endpoint expects all
	// three fields.
	body, err := json.Marshal(SearchQuery{Query: "education policy"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"query":"education policy","document_type":"","category":""}`
	if string(body) != want {
		t.Errorf("body = %s, want %s", body, want)
	}
}
