package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"motionkb/internal/catalog"
	"motionkb/internal/store"
)

// ReplaceCatalogs empties the catalog tables and runs the given INSERT
// statements in one transaction. Either all rows land or none do.
func (c *Client) ReplaceCatalogs(ctx context.Context, statements string) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "TRUNCATE knowledge, beats, layouts"); err != nil {
		return fmt.Errorf("clearing catalogs: %w", err)
	}
	if statements != "" {
		if _, err := tx.Exec(ctx, statements); err != nil {
			return fmt.Errorf("loading catalogs: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}

// PendingEmbeddings lists rows without an embedding, knowledge first.
// limit <= 0 means no limit.
func (c *Client) PendingEmbeddings(ctx context.Context, limit int) ([]store.PendingEmbedding, error) {
	query := `
SELECT 'knowledge', id::text, title || E'\n' || content FROM knowledge WHERE embedding IS NULL
UNION ALL
SELECT 'beats', name, name || ': ' || description FROM beats WHERE embedding IS NULL
UNION ALL
SELECT 'layouts', name, name || ': ' || description FROM layouts WHERE embedding IS NULL
`
	args := []any{}
	if limit > 0 {
		query += "LIMIT $1"
		args = append(args, limit)
	}

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pending embeddings: %w", err)
	}
	defer rows.Close()

	pending := []store.PendingEmbedding{}
	for rows.Next() {
		var p store.PendingEmbedding
		var table string
		if err := rows.Scan(&table, &p.Key, &p.Text); err != nil {
			return nil, fmt.Errorf("scanning pending embedding: %w", err)
		}
		p.Table = store.Table(table)
		pending = append(pending, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending embeddings: %w", err)
	}
	return pending, nil
}

func (c *Client) SetEmbedding(ctx context.Context, target store.PendingEmbedding, vector []float32) error {
	var (
		query string
		key   any
	)
	switch target.Table {
	case store.TableKnowledge:
		id, err := strconv.Atoi(target.Key)
		if err != nil {
			return fmt.Errorf("invalid knowledge id %q: %w", target.Key, err)
		}
		query, key = "UPDATE knowledge SET embedding = $1::text::vector WHERE id = $2", id
	case store.TableBeats:
		query, key = "UPDATE beats SET embedding = $1::text::vector WHERE name = $2", target.Key
	case store.TableLayouts:
		query, key = "UPDATE layouts SET embedding = $1::text::vector WHERE name = $2", target.Key
	default:
		return fmt.Errorf("unknown catalog table %q", target.Table)
	}

	tag, err := c.pool.Exec(ctx, query, vectorLiteral(vector), key)
	if err != nil {
		return fmt.Errorf("setting embedding for %s %s: %w", target.Table, target.Key, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("setting embedding for %s %s: %w", target.Table, target.Key, pgx.ErrNoRows)
	}
	return nil
}

// ListKnowledge returns every stored knowledge row ordered by id.
func (c *Client) ListKnowledge(ctx context.Context) ([]catalog.KnowledgeItem, error) {
	rows, err := c.pool.Query(ctx, "SELECT id, category, title, content, tags FROM knowledge ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing knowledge: %w", err)
	}
	defer rows.Close()

	items := []catalog.KnowledgeItem{}
	for rows.Next() {
		var item catalog.KnowledgeItem
		var category string
		if err := rows.Scan(&item.ID, &category, &item.Title, &item.Content, &item.Tags); err != nil {
			return nil, fmt.Errorf("scanning knowledge row: %w", err)
		}
		item.Category = catalog.Category(category)
		if item.Tags == nil {
			item.Tags = []string{}
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating knowledge rows: %w", err)
	}
	return items, nil
}
