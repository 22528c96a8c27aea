package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExportSQL renders one INSERT per item, ordered by id and newline separated.
// Free text is single-quote escaped.
func (s *KnowledgeStore) ExportSQL() string {
	items := s.All()
	statements := make([]string, 0, len(items))
	for _, item := range items {
		statements = append(statements, fmt.Sprintf(
			"INSERT INTO knowledge (id, category, title, content, tags) VALUES (%d, %s, %s, %s, %s);",
			item.ID,
			quote(string(item.Category)),
			quote(item.Title),
			quote(item.Content),
			textArray(item.Tags),
		))
	}
	return strings.Join(statements, "\n")
}

func (s *BeatStore) ExportSQL() string {
	items := s.All()
	statements := make([]string, 0, len(items))
	for _, item := range items {
		statements = append(statements, fmt.Sprintf(
			"INSERT INTO beats (name, description, params, category, example_yaml) VALUES (%s, %s, %s::jsonb, %s, %s);",
			quote(item.Name),
			quote(item.Description),
			quote(jsonText(item.Params)),
			quote(item.Category),
			quote(item.Example),
		))
	}
	return strings.Join(statements, "\n")
}

// LayoutsSQL renders layout presets in the same form as the catalog exports.
func LayoutsSQL(layouts []LayoutItem) string {
	statements := make([]string, 0, len(layouts))
	for _, item := range layouts {
		statements = append(statements, fmt.Sprintf(
			"INSERT INTO layouts (name, slots, description, example_yaml) VALUES (%s, %s::jsonb, %s, %s);",
			quote(item.Name),
			quote(jsonText(item.Slots)),
			quote(item.Description),
			quote(item.Example),
		))
	}
	return strings.Join(statements, "\n")
}

func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func textArray(values []string) string {
	if len(values) == 0 {
		return "'{}'::text[]"
	}
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = quote(value)
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]::text[]"
}

// jsonText marshals maps of plain values, which cannot fail.
func jsonText(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(data)
}
