package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pratham-bits/Shiksha-Setu/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request",
		zap.String("query", query.Query),
		zap.String("document_type", query.DocumentType),
		zap.String("category", query.Category))

	results, err := s.engine.Search(r.Context(), &query)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	s.respondJSON(w, http.StatusOK, models.SearchResponse{
		Success: true,
		Results: results,
		Count:   len(results),
	})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}
	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Document not found")
		return
	}
	s.respondJSON(w, http.StatusOK, models.DocumentResponse{
		Success:  true,
		Document: doc,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.ListDocuments(r.Context())
	if err != nil {
		s.logger.Error("list documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	s.respondJSON(w, http.StatusOK, models.DocumentsResponse{
		Success:   true,
		Documents: docs,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondFacet(w, r, "categories", s.store.Categories)
}

func (s *Server) handleDocumentTypes(w http.ResponseWriter, r *http.Request) {
	s.respondFacet(w, r, "document types", s.store.DocumentTypes)
}

func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	s.respondFacet(w, r, "departments", s.store.Departments)
}

func (s *Server) respondFacet(w http.ResponseWriter, r *http.Request, name string,
	fetch func(ctx context.Context) ([]string, error)) {
	values, err := fetch(r.Context())
	if err != nil {
		s.logger.Error("facet query failed", zap.String("facet", name), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Failed to load "+name)
		return
	}
	if values == nil {
		values = []string{}
	}
	s.respondJSON(w, http.StatusOK, models.FacetResponse{
		Success: true,
		Values:  values,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountDocuments(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"documents": count,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes the standard failure envelope.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}
