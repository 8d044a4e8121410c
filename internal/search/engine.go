package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/pratham-bits/Shiksha-Setu/internal/config"
	"github.com/pratham-bits/Shiksha-Setu/internal/keyword"
	"github.com/pratham-bits/Shiksha-Setu/internal/models"
	"github.com/pratham-bits/Shiksha-Setu/internal/storage"
	"github.com/pratham-bits/Shiksha-Setu/pkg/utils"
)

// Engine runs catalog searches by combining the store's weighted LIKE search
// with keyword index scoring.
type Engine struct {
	store  storage.Store
	index  keyword.Index
	cfg    config.SearchConfig
	logger *zap.Logger
}

// NewEngine creates a search engine.
func NewEngine(store storage.Store, index keyword.Index, cfg config.SearchConfig, logger *zap.Logger) *Engine {
	return &Engine{store: store, index: index, cfg: cfg, logger: logger}
}

// Search runs the query and returns scored results, most relevant first.
// Catalog matches from the store form the base set; keyword index scores are
// priority-weighted, max-normalized to [0,1], and attached to matching
// results. Index-only hits below MinScore are dropped. With an empty query
// the result is the filtered catalog with no scores.
func (e *Engine) Search(ctx context.Context, q *models.SearchQuery) ([]models.SearchResult, error) {
	q.Normalize()

	filter := storage.Filter{
		Query:        q.Query,
		DocumentType: q.DocumentType,
		Category:     q.Category,
	}
	docs, err := e.store.SearchDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}

	if q.Query == "" {
		return e.toResults(docs, nil), nil
	}

	hits, err := e.index.Search(ctx, q.Query, e.cfg.TopKCandidates, keyword.Filters{
		DocumentType: q.DocumentType,
		Category:     q.Category,
	})
	if err != nil {
		// The store already produced a usable result set; log and degrade.
		e.logger.Warn("keyword index search failed", zap.Error(err))
		hits = nil
	}

	byID := make(map[int64]*models.Document, len(docs))
	catalogIDs := make(map[int64]bool, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
		catalogIDs[doc.ID] = true
	}

	// Pull in documents the index matched that the LIKE search missed, e.g.
	// stem or token matches across word boundaries.
	for _, hit := range hits {
		if _, ok := byID[hit.ID]; ok {
			continue
		}
		doc, err := e.store.GetDocument(ctx, hit.ID)
		if err != nil {
			e.logger.Warn("indexed document missing from catalog",
				zap.Int64("id", hit.ID), zap.Error(err))
			continue
		}
		byID[doc.ID] = doc
		docs = append(docs, doc)
	}

	priorities := make(map[int64]int, len(byID))
	for id, doc := range byID {
		priorities[id] = doc.SearchPriority
	}
	scores := NormalizeScores(hits, priorities)

	results := e.toResults(docs, scores)

	// Index-only hits must clear the score floor; catalog matches always stay.
	filtered := results[:0]
	for _, r := range results {
		if !catalogIDs[r.ID] && r.SimilarityScore < e.cfg.MinScore {
			continue
		}
		filtered = append(filtered, r)
	}
	results = filtered

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})
	if len(results) > e.cfg.MaxResults {
		results = results[:e.cfg.MaxResults]
	}
	return results, nil
}

func (e *Engine) toResults(docs []*models.Document, scores map[int64]float64) []models.SearchResult {
	results := make([]models.SearchResult, 0, len(docs))
	for _, doc := range docs {
		preview := *doc
		preview.Content = utils.Truncate(doc.Content, e.cfg.PreviewLength)
		preview.FullTextContent = ""
		results = append(results, models.SearchResult{
			Document:        preview,
			SimilarityScore: scores[doc.ID],
		})
		if len(results) >= e.cfg.MaxResults && scores == nil {
			break
		}
	}
	return results
}
