package app

import (
	"strings"

	"motionkb/internal/catalog"
)

// Knowledge lists knowledge items, optionally restricted to one category.
func (a *App) Knowledge(category catalog.Category) ([]catalog.KnowledgeItem, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	if category == "" {
		return a.knowledge.All(), nil
	}
	return a.knowledge.ByCategory(category), nil
}

// FindKnowledge is the local substring search over titles, content and tags.
func (a *App) FindKnowledge(query string) ([]catalog.KnowledgeItem, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	return a.knowledge.Search(query), nil
}

func (a *App) AddKnowledge(input catalog.KnowledgeInput) (catalog.KnowledgeItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return catalog.KnowledgeItem{}, ErrNotInitialized
	}
	return a.knowledge.Add(input)
}

func (a *App) Beats(category string) ([]catalog.BeatItem, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	if category == "" {
		return a.beats.All(), nil
	}
	return a.beats.ByCategory(category), nil
}

func (a *App) FindBeats(query string) ([]catalog.BeatItem, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	return a.beats.Search(query), nil
}

func (a *App) Layouts() ([]catalog.LayoutItem, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	out := make([]catalog.LayoutItem, 0, len(a.layouts))
	for _, layout := range a.layouts {
		out = append(out, layout.Clone())
	}
	return out, nil
}

// ExportSQL renders knowledge, beats and layouts as INSERT statements for
// the vector store tables.
func (a *App) ExportSQL() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return "", ErrNotInitialized
	}
	parts := []string{}
	for _, block := range []string{
		a.knowledge.ExportSQL(),
		a.beats.ExportSQL(),
		catalog.LayoutsSQL(a.layouts),
	} {
		if block != "" {
			parts = append(parts, block)
		}
	}
	return strings.Join(parts, "\n"), nil
}
