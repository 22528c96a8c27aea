package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidCategory = errors.New("category must be rule, example, pattern or antipattern")

type Category string

const (
	CategoryRule        Category = "rule"
	CategoryExample     Category = "example"
	CategoryPattern     Category = "pattern"
	CategoryAntipattern Category = "antipattern"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryRule, CategoryExample, CategoryPattern, CategoryAntipattern:
		return true
	}
	return false
}

type KnowledgeItem struct {
	ID       int      `json:"id" yaml:"id"`
	Category Category `json:"category" yaml:"category"`
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Tags     []string `json:"tags" yaml:"tags"`
	// Similarity is only set on retrieval results.
	Similarity *float64 `json:"similarity,omitempty" yaml:"-"`
}

type KnowledgeInput struct {
	Category Category `yaml:"category"`
	Title    string   `yaml:"title"`
	Content  string   `yaml:"content"`
	Tags     []string `yaml:"tags"`
}

// KnowledgeUpdate holds the fields to replace. Nil fields are left unchanged.
type KnowledgeUpdate struct {
	Category *Category
	Title    *string
	Content  *string
	Tags     []string
}

// KnowledgeStore owns knowledge items keyed by a monotonically assigned id.
// Ids are never reused, even after deletion. Not safe for concurrent mutation.
type KnowledgeStore struct {
	items  map[int]*KnowledgeItem
	nextID int
}

func NewKnowledgeStore() *KnowledgeStore {
	return &KnowledgeStore{items: make(map[int]*KnowledgeItem), nextID: 1}
}

// Add assigns the next id to input. Items with an unknown category are
// rejected because the prompt assembler could never render them.
func (s *KnowledgeStore) Add(input KnowledgeInput) (KnowledgeItem, error) {
	if !input.Category.Valid() {
		return KnowledgeItem{}, fmt.Errorf("%w: %q", ErrInvalidCategory, input.Category)
	}
	item := &KnowledgeItem{
		ID:       s.nextID,
		Category: input.Category,
		Title:    input.Title,
		Content:  input.Content,
		Tags:     cloneStrings(input.Tags),
	}
	s.nextID++
	s.items[item.ID] = item
	return item.Clone(), nil
}

// Import stores items with their existing ids, replacing any item with the
// same id, and advances the id counter past the highest imported id.
func (s *KnowledgeStore) Import(items ...KnowledgeItem) {
	for _, in := range items {
		item := in.Clone()
		item.Similarity = nil
		s.items[item.ID] = &item
		if item.ID >= s.nextID {
			s.nextID = item.ID + 1
		}
	}
}

// Update reports ok=false for an unknown id. An invalid category leaves the
// item untouched and returns ErrInvalidCategory.
func (s *KnowledgeStore) Update(id int, update KnowledgeUpdate) (KnowledgeItem, bool, error) {
	item, ok := s.items[id]
	if !ok {
		return KnowledgeItem{}, false, nil
	}
	if update.Category != nil && !update.Category.Valid() {
		return KnowledgeItem{}, true, fmt.Errorf("%w: %q", ErrInvalidCategory, *update.Category)
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.Title != nil {
		item.Title = *update.Title
	}
	if update.Content != nil {
		item.Content = *update.Content
	}
	if update.Tags != nil {
		item.Tags = cloneStrings(update.Tags)
	}
	return item.Clone(), true, nil
}

func (s *KnowledgeStore) Delete(id int) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

func (s *KnowledgeStore) Get(id int) (KnowledgeItem, bool) {
	item, ok := s.items[id]
	if !ok {
		return KnowledgeItem{}, false
	}
	return item.Clone(), true
}

func (s *KnowledgeStore) Len() int {
	return len(s.items)
}

// All returns every item ordered by id.
func (s *KnowledgeStore) All() []KnowledgeItem {
	out := make([]KnowledgeItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *KnowledgeStore) ByCategory(category Category) []KnowledgeItem {
	out := []KnowledgeItem{}
	for _, item := range s.All() {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Search matches query case-insensitively as a substring of the title,
// content or any tag.
func (s *KnowledgeStore) Search(query string) []KnowledgeItem {
	needle := strings.ToLower(query)
	out := []KnowledgeItem{}
	for _, item := range s.All() {
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Content), needle) ||
			anyContains(item.Tags, needle) {
			out = append(out, item)
		}
	}
	return out
}

func (item KnowledgeItem) Clone() KnowledgeItem {
	out := item
	out.Tags = cloneStrings(item.Tags)
	if item.Similarity != nil {
		score := *item.Similarity
		out.Similarity = &score
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}

func anyContains(values []string, lowerNeedle string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), lowerNeedle) {
			return true
		}
	}
	return false
}
