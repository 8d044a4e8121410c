package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pratham-bits/Shiksha-Setu/internal/keyword"
	"github.com/pratham-bits/Shiksha-Setu/internal/models"
	"github.com/pratham-bits/Shiksha-Setu/internal/storage"
)

// Syncer replaces the store contents and keyword index with a seed snapshot.
type Syncer struct {
	store  storage.Store
	index  keyword.Index
	logger *zap.Logger
}

// NewSyncer creates a syncer.
func NewSyncer(store storage.Store, index keyword.Index, logger *zap.Logger) *Syncer {
	return &Syncer{store: store, index: index, logger: logger}
}

// SyncFile loads the seed at path and applies it.
func (s *Syncer) SyncFile(ctx context.Context, path string) error {
	docs, err := LoadSeed(path)
	if err != nil {
		return err
	}
	return s.Sync(ctx, docs)
}

// Sync replaces the whole catalog with docs. Existing index entries for
// documents no longer in the seed are deleted before reindexing.
func (s *Syncer) Sync(ctx context.Context, docs []*models.Document) error {
	existing, err := s.store.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing documents: %w", err)
	}

	if err := s.store.ReplaceAll(ctx, docs); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}

	keep := make(map[int64]bool, len(docs))
	for _, doc := range docs {
		keep[doc.ID] = true
	}
	for _, old := range existing {
		if !keep[old.ID] {
			if err := s.index.Delete(ctx, old.ID); err != nil {
				s.logger.Warn("failed to delete stale index entry",
					zap.Int64("id", old.ID), zap.Error(err))
			}
		}
	}

	for _, doc := range docs {
		if err := s.index.Index(ctx, doc); err != nil {
			return fmt.Errorf("failed to index document %d: %w", doc.ID, err)
		}
	}

	s.logger.Info("catalog synced", zap.Int("documents", len(docs)))
	return nil
}
