package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"motionkb/internal/catalog"
)

// Document is a knowledge markdown file: YAML frontmatter followed by a body.
type Document struct {
	Frontmatter map[string]any
	Title       string
	Category    catalog.Category
	Tags        []string
	Body        string
	SourceFile  string
}

var (
	ErrNoFrontmatter   = errors.New("no frontmatter found")
	ErrInvalidYAML     = errors.New("invalid YAML in frontmatter")
	ErrMissingTitle    = errors.New("frontmatter missing required 'title' field")
	ErrMissingCategory = errors.New("frontmatter missing required 'category' field")
	ErrInvalidCategory = errors.New("frontmatter 'category' must be rule, example, pattern or antipattern")
)

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

// ParseDir parses every .md file under root in path order. Files without
// frontmatter are skipped; any other parse failure aborts with the file path.
func ParseDir(root string) ([]*Document, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(paths)

	docs := []*Document{}
	for _, path := range paths {
		doc, err := ParseFile(path)
		if errors.Is(err, ErrNoFrontmatter) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func Parse(content []byte) (*Document, error) {
	trimmed := bytes.TrimLeft(content, "\ufeff\n\r\t ")
	trimmed = bytes.ReplaceAll(trimmed, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(trimmed, []byte("---\n")) {
		return nil, ErrNoFrontmatter
	}

	rest := trimmed[len("---\n"):]
	end := bytes.Index(rest, []byte("---\n"))
	if end == -1 {
		return nil, ErrNoFrontmatter
	}

	yamlBytes := rest[:end]
	body := string(rest[end+len("---\n"):])

	var frontmatter map[string]any
	if err := yaml.Unmarshal(yamlBytes, &frontmatter); err != nil {
		return nil, ErrInvalidYAML
	}

	title, ok := frontmatter["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return nil, ErrMissingTitle
	}

	category, ok := frontmatter["category"].(string)
	if !ok || strings.TrimSpace(category) == "" {
		return nil, ErrMissingCategory
	}
	cat := catalog.Category(strings.ToLower(strings.TrimSpace(category)))
	if !cat.Valid() {
		return nil, ErrInvalidCategory
	}

	tags, err := parseTags(frontmatter["tags"])
	if err != nil {
		return nil, err
	}

	return &Document{
		Frontmatter: frontmatter,
		Title:       title,
		Category:    cat,
		Tags:        tags,
		Body:        body,
	}, nil
}

// KnowledgeInput converts the document into a knowledge catalog entry.
func (d *Document) KnowledgeInput() catalog.KnowledgeInput {
	return catalog.KnowledgeInput{
		Category: d.Category,
		Title:    d.Title,
		Content:  strings.TrimSpace(d.Body),
		Tags:     d.Tags,
	}
}

func parseTags(value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("tags must be strings")
			}
			if strings.TrimSpace(s) == "" {
				continue
			}
			tags = append(tags, s)
		}
		if len(tags) == 0 {
			return nil, nil
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("tags must be string or list of strings")
	}
}
