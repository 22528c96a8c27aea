package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrOffline = errors.New("vector store is not connected")

const backfillBatch = 64

type SeedResult struct {
	Knowledge int
	Embedded  int
}

// Seed creates the vector store schema, replaces the stored catalogs with
// the in-memory ones and computes embeddings for every row lacking one.
func (a *App) Seed(ctx context.Context) (SeedResult, error) {
	client, err := a.Retrieval()
	if err != nil {
		return SeedResult{}, err
	}
	s := client.Store()
	if s == nil {
		return SeedResult{}, ErrOffline
	}

	statements, err := a.ExportSQL()
	if err != nil {
		return SeedResult{}, err
	}

	cfg := embeddingConfig(a.opts.Config.Embedding)
	embedder, err := a.opts.NewEmbedder(cfg)
	if err != nil {
		return SeedResult{}, fmt.Errorf("creating embedder: %w", err)
	}

	if err := s.EnsureSchema(ctx, cfg.Dimension); err != nil {
		return SeedResult{}, err
	}
	if err := s.ReplaceCatalogs(ctx, statements); err != nil {
		return SeedResult{}, err
	}

	var result SeedResult
	for {
		pending, err := s.PendingEmbeddings(ctx, backfillBatch)
		if err != nil {
			return result, err
		}
		if len(pending) == 0 {
			break
		}
		for _, row := range pending {
			vector, err := embedder.Embed(ctx, row.Text)
			a.opts.Metrics.EmbeddingRequest(err)
			if err != nil {
				return result, fmt.Errorf("embedding %s %s: %w", row.Table, row.Key, err)
			}
			if err := s.SetEmbedding(ctx, row, vector); err != nil {
				return result, err
			}
			result.Embedded++
		}
		a.logger.Debug("backfilled embeddings", zap.Int("rows", len(pending)))
	}

	stored, err := s.ListKnowledge(ctx)
	if err != nil {
		return result, err
	}
	result.Knowledge = len(stored)

	a.logger.Info("vector store seeded",
		zap.Int("knowledge", result.Knowledge),
		zap.Int("embedded", result.Embedded),
	)
	return result, nil
}
