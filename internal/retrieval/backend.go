package retrieval

import (
	"context"
	"fmt"

	"motionkb/internal/catalog"
	"motionkb/internal/embedding"
	"motionkb/internal/metrics"
	"motionkb/internal/store"
)

// Backend answers the three catalog searches. The client picks one
// implementation at connect time and keeps it until disconnect.
type Backend interface {
	Mode() string
	Knowledge(ctx context.Context, query string, limit int, category string) ([]catalog.KnowledgeItem, error)
	Beats(ctx context.Context, query string, limit int, category string) ([]catalog.BeatItem, error)
	Layouts(ctx context.Context, query string, limit int) ([]catalog.LayoutItem, error)
}

type onlineBackend struct {
	store    store.Store
	embedder embedding.Embedder
	metrics  *metrics.Collector
}

var _ Backend = (*onlineBackend)(nil)

func (b *onlineBackend) Mode() string { return metrics.ModeOnline }

func (b *onlineBackend) embed(ctx context.Context, query string) ([]float32, error) {
	vector, err := b.embedder.Embed(ctx, query)
	b.metrics.EmbeddingRequest(err)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return vector, nil
}

func (b *onlineBackend) Knowledge(ctx context.Context, query string, limit int, category string) ([]catalog.KnowledgeItem, error) {
	vector, err := b.embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return b.store.SearchKnowledge(ctx, vector, limit, category)
}

func (b *onlineBackend) Beats(ctx context.Context, query string, limit int, category string) ([]catalog.BeatItem, error) {
	vector, err := b.embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return b.store.SearchBeats(ctx, vector, limit, category)
}

func (b *onlineBackend) Layouts(ctx context.Context, query string, limit int) ([]catalog.LayoutItem, error) {
	vector, err := b.embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return b.store.SearchLayouts(ctx, vector, limit)
}

// offlineBackend serves the fixtures regardless of the query text.
type offlineBackend struct{}

var _ Backend = offlineBackend{}

func (offlineBackend) Mode() string { return metrics.ModeOffline }

func (offlineBackend) Knowledge(_ context.Context, _ string, limit int, category string) ([]catalog.KnowledgeItem, error) {
	out := []catalog.KnowledgeItem{}
	for _, item := range offlineKnowledge {
		if len(out) == limit {
			break
		}
		if category != "" && string(item.Category) != category {
			continue
		}
		out = append(out, item.Clone())
	}
	return out, nil
}

func (offlineBackend) Beats(_ context.Context, _ string, limit int, category string) ([]catalog.BeatItem, error) {
	out := []catalog.BeatItem{}
	for _, item := range offlineBeats {
		if len(out) == limit {
			break
		}
		if category != "" && item.Category != category {
			continue
		}
		out = append(out, item.Clone())
	}
	return out, nil
}

func (offlineBackend) Layouts(_ context.Context, _ string, limit int) ([]catalog.LayoutItem, error) {
	out := []catalog.LayoutItem{}
	for _, item := range offlineLayouts {
		if len(out) == limit {
			break
		}
		out = append(out, item.Clone())
	}
	return out, nil
}
