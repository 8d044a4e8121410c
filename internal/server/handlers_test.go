package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/pratham-bits/Shiksha-Setu/internal/config"
	"github.com/pratham-bits/Shiksha-Setu/internal/keyword"
	"github.com/pratham-bits/Shiksha-Setu/internal/models"
	"github.com/pratham-bits/Shiksha-Setu/internal/search"
	"github.com/pratham-bits/Shiksha-Setu/internal/storage"
)

func newTestServer(t *testing.T, serverCfg *config.ServerConfig) *Server {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewSQLiteStore(filepath.Join(dir, "db.sqlite"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	kwIdx, err := keyword.NewBleveIndex(filepath.Join(dir, "bleve"), keyword.DefaultBoosts())
	if err != nil {
		t.Fatalf("NewBleveIndex: %v", err)
	}
	t.Cleanup(func() { kwIdx.Close() })

	docs := []*models.Document{
		{
			ID:           1,
			Title:        "National Education Policy 2020",
			Content:      "Framework for reform across school and higher education.",
			DocumentType: "Policy",
			Category:     "Higher Education",
			Department:   "Ministry of Education",
		},
		{
			ID:           2,
			Title:        "Scholarship Guidelines",
			Content:      "Eligibility rules for merit scholarships.",
			DocumentType: "Scheme",
			Category:     "Scholarships",
			Department:   "Ministry of Education",
		},
	}
	for _, doc := range docs {
		if err := store.CreateDocument(context.Background(), doc); err != nil {
			t.Fatalf("CreateDocument: %v", err)
		}
		if err := kwIdx.Index(context.Background(), doc); err != nil {
			t.Fatalf("Index: %v", err)
		}
	}

	searchCfg := config.SearchConfig{
		MaxResults: 100, TopKCandidates: 100,
		TitleBoost: 5.0, KeywordsBoost: 3.0, ContentBoost: 2.0,
		MinScore: 0.001, PreviewLength: 200,
	}
	engine := search.NewEngine(store, kwIdx, searchCfg, zap.NewNop())
	if serverCfg == nil {
		serverCfg = &config.ServerConfig{Port: 8080}
	}
	return NewServer(engine, store, serverCfg, zap.NewNop())
}

func TestHandleSearch(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	body, _ := json.Marshal(models.SearchQuery{Query: "education policy"})
	r := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.Count != len(resp.Results) {
		t.Errorf("count = %d, results = %d", resp.Count, len(resp.Results))
	}
	if resp.Count == 0 {
		t.Error("expected at least one result")
	}
}

func TestHandleSearchNoResults(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	body, _ := json.Marshal(models.SearchQuery{Query: "zzzznothing"})
	r := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Count != 0 || resp.Results == nil {
		t.Errorf("want success with empty results array, got %+v", resp)
	}
}

func TestHandleSearchBadBody(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	r := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["success"] != false {
		t.Errorf("success = %v, want false", resp["success"])
	}
}

func TestHandleGetDocument(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	r := httptest.NewRequest(http.MethodGet, "/api/document/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.DocumentResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Document == nil {
		t.Fatalf("want success with document, got %+v", resp)
	}
	if resp.Document.Title != "National Education Policy 2020" {
		t.Errorf("title = %q", resp.Document.Title)
	}
}

func TestHandleGetDocumentNotFound(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	r := httptest.NewRequest(http.MethodGet, "/api/document/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != "Document not found" {
		t.Errorf("error = %v, want %q", resp["error"], "Document not found")
	}
}

func TestHandleFacets(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	tests := []struct {
		path string
		want []string
	}{
		{"/api/categories", []string{"Higher Education", "Scholarships"}},
		{"/api/document-types", []string{"Policy", "Scheme"}},
		{"/api/departments", []string{"Ministry of Education"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			var resp models.FacetResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if len(resp.Values) != len(tt.want) {
				t.Fatalf("got %v, want %v", resp.Values, tt.want)
			}
			for i, v := range tt.want {
				if resp.Values[i] != v {
					t.Errorf("values[%d] = %q, want %q", i, resp.Values[i], v)
				}
			}
		})
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	srv := newTestServer(t, &config.ServerConfig{Port: 8080, APIKeys: []string{"secret-key"}})
	router := srv.Router()

	t.Run("missing key rejected", func(t *testing.T) {
		body, _ := json.Marshal(models.SearchQuery{Query: "policy"})
		r := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		var resp map[string]any
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp["error"] != "Authentication required" {
			t.Errorf("error = %v, want %q", resp["error"], "Authentication required")
		}
	})

	t.Run("valid key accepted", func(t *testing.T) {
		body, _ := json.Marshal(models.SearchQuery{Query: "policy"})
		r := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body))
		r.Header.Set("Authorization", "Bearer secret-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("health exempt", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
}
