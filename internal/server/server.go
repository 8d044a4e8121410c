// Package server provides the HTTP API for the ShikshaSetu catalog.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pratham-bits/Shiksha-Setu/internal/config"
	"github.com/pratham-bits/Shiksha-Setu/internal/search"
	"github.com/pratham-bits/Shiksha-Setu/internal/storage"
)

// Server is the HTTP server for the ShikshaSetu API.
type Server struct {
	engine *search.Engine
	store  storage.Store
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	store storage.Store,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine: engine,
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(APIKeyMiddleware(s.config.APIKeys))

	r.Post("/api/search", s.handleSearch)
	r.Get("/api/document/{id}", s.handleGetDocument)
	r.Get("/api/documents", s.handleListDocuments)
	r.Get("/api/categories", s.handleCategories)
	r.Get("/api/document-types", s.handleDocumentTypes)
	r.Get("/api/departments", s.handleDepartments)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
