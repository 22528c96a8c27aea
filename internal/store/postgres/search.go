package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"motionkb/internal/catalog"
)

func (c *Client) SearchKnowledge(ctx context.Context, vector []float32, limit int, category string) ([]catalog.KnowledgeItem, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector must not be empty")
	}

	sql := `
SELECT id, category, title, content, tags,
    1 - (embedding <=> $1::text::vector) AS similarity
FROM knowledge
WHERE embedding IS NOT NULL
  AND ($2 = '' OR category = $2)
ORDER BY embedding <=> $1::text::vector ASC, id ASC
LIMIT $3
`

	rows, err := c.pool.Query(ctx, sql, vectorLiteral(vector), category, limit)
	if err != nil {
		return nil, fmt.Errorf("searching knowledge: %w", err)
	}
	defer rows.Close()

	results := []catalog.KnowledgeItem{}
	for rows.Next() {
		var item catalog.KnowledgeItem
		var itemCategory string
		var similarity float64
		if err := rows.Scan(&item.ID, &itemCategory, &item.Title, &item.Content, &item.Tags, &similarity); err != nil {
			return nil, fmt.Errorf("scanning knowledge result: %w", err)
		}
		item.Category = catalog.Category(itemCategory)
		if item.Tags == nil {
			item.Tags = []string{}
		}
		item.Similarity = &similarity
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating knowledge results: %w", err)
	}
	return results, nil
}

func (c *Client) SearchBeats(ctx context.Context, vector []float32, limit int, category string) ([]catalog.BeatItem, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector must not be empty")
	}

	sql := `
SELECT name, description, params, category, example_yaml,
    1 - (embedding <=> $1::text::vector) AS similarity
FROM beats
WHERE embedding IS NOT NULL
  AND ($2 = '' OR category = $2)
ORDER BY embedding <=> $1::text::vector ASC, name ASC
LIMIT $3
`

	rows, err := c.pool.Query(ctx, sql, vectorLiteral(vector), category, limit)
	if err != nil {
		return nil, fmt.Errorf("searching beats: %w", err)
	}
	defer rows.Close()

	results := []catalog.BeatItem{}
	for rows.Next() {
		var item catalog.BeatItem
		var params []byte
		var similarity float64
		if err := rows.Scan(&item.Name, &item.Description, &params, &item.Category, &item.Example, &similarity); err != nil {
			return nil, fmt.Errorf("scanning beat result: %w", err)
		}
		item.Params = map[string]catalog.ParamType{}
		if len(params) > 0 {
			if err := json.Unmarshal(params, &item.Params); err != nil {
				return nil, fmt.Errorf("decoding params of beat %s: %w", item.Name, err)
			}
		}
		item.Similarity = &similarity
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating beat results: %w", err)
	}
	return results, nil
}

func (c *Client) SearchLayouts(ctx context.Context, vector []float32, limit int) ([]catalog.LayoutItem, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector must not be empty")
	}

	sql := `
SELECT name, slots, description, example_yaml,
    1 - (embedding <=> $1::text::vector) AS similarity
FROM layouts
WHERE embedding IS NOT NULL
ORDER BY embedding <=> $1::text::vector ASC, name ASC
LIMIT $2
`

	rows, err := c.pool.Query(ctx, sql, vectorLiteral(vector), limit)
	if err != nil {
		return nil, fmt.Errorf("searching layouts: %w", err)
	}
	defer rows.Close()

	results := []catalog.LayoutItem{}
	for rows.Next() {
		var item catalog.LayoutItem
		var slots []byte
		var similarity float64
		if err := rows.Scan(&item.Name, &slots, &item.Description, &item.Example, &similarity); err != nil {
			return nil, fmt.Errorf("scanning layout result: %w", err)
		}
		item.Slots = map[string]catalog.Slot{}
		if len(slots) > 0 {
			if err := json.Unmarshal(slots, &item.Slots); err != nil {
				return nil, fmt.Errorf("decoding slots of layout %s: %w", item.Name, err)
			}
		}
		item.Similarity = &similarity
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layout results: %w", err)
	}
	return results, nil
}
