package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("ensuring schema: invalid embedding dimension %d", dimension)
	}

	// Every statement is idempotent. Changing the dimension of an existing
	// database requires dropping the embedding columns first.
	ddl := fmt.Sprintf(`
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS knowledge (
    id        INTEGER PRIMARY KEY,
    category  TEXT NOT NULL,
    title     TEXT NOT NULL,
    content   TEXT NOT NULL DEFAULT '',
    tags      TEXT[] NOT NULL DEFAULT '{}',
    embedding vector(%[1]d)
);

CREATE TABLE IF NOT EXISTS beats (
    name         TEXT PRIMARY KEY,
    description  TEXT NOT NULL DEFAULT '',
    params       JSONB NOT NULL DEFAULT '{}',
    category     TEXT NOT NULL DEFAULT '',
    example_yaml TEXT NOT NULL DEFAULT '',
    embedding    vector(%[1]d)
);

CREATE TABLE IF NOT EXISTS layouts (
    name         TEXT PRIMARY KEY,
    slots        JSONB NOT NULL DEFAULT '{}',
    description  TEXT NOT NULL DEFAULT '',
    example_yaml TEXT NOT NULL DEFAULT '',
    embedding    vector(%[1]d)
);

CREATE INDEX IF NOT EXISTS idx_knowledge_category ON knowledge (category);
CREATE INDEX IF NOT EXISTS idx_beats_category ON beats (category);
CREATE INDEX IF NOT EXISTS idx_knowledge_embedding ON knowledge USING hnsw (embedding vector_cosine_ops);
CREATE INDEX IF NOT EXISTS idx_beats_embedding ON beats USING hnsw (embedding vector_cosine_ops);
CREATE INDEX IF NOT EXISTS idx_layouts_embedding ON layouts USING hnsw (embedding vector_cosine_ops);
`, dimension)

	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
