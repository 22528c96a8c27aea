package store

import (
	"context"

	"motionkb/internal/catalog"
)

// Store is a vector store holding the knowledge, beat and layout catalogs
// alongside their embeddings.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context, dimension int) error

	SearchKnowledge(ctx context.Context, vector []float32, limit int, category string) ([]catalog.KnowledgeItem, error)
	SearchBeats(ctx context.Context, vector []float32, limit int, category string) ([]catalog.BeatItem, error)
	SearchLayouts(ctx context.Context, vector []float32, limit int) ([]catalog.LayoutItem, error)

	ReplaceCatalogs(ctx context.Context, statements string) error
	PendingEmbeddings(ctx context.Context, limit int) ([]PendingEmbedding, error)
	SetEmbedding(ctx context.Context, target PendingEmbedding, vector []float32) error
	ListKnowledge(ctx context.Context) ([]catalog.KnowledgeItem, error)
}
