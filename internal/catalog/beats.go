package catalog

import (
	"fmt"
	"sort"
	"strings"
)

type ParamType string

const (
	ParamNumber     ParamType = "number"
	ParamNumberList ParamType = "number[]"
	ParamString     ParamType = "string"
	ParamStringList ParamType = "string[]"
)

type BeatItem struct {
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description" yaml:"description"`
	Params      map[string]ParamType `json:"params" yaml:"params"`
	Category    string               `json:"category" yaml:"category"`
	Example     string               `json:"example" yaml:"example"`
	Similarity  *float64             `json:"similarity,omitempty" yaml:"-"`
}

type BeatInput struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Params      map[string]ParamType `yaml:"params"`
	Category    string               `yaml:"category"`
	Example     string               `yaml:"example"`
}

// BeatUpdate holds the fields to replace. Nil fields are left unchanged. The
// name is the key and cannot be updated.
type BeatUpdate struct {
	Description *string
	Params      map[string]ParamType
	Category    *string
	Example     *string
}

// BeatStore owns beat definitions keyed by name. Not safe for concurrent mutation.
type BeatStore struct {
	items map[string]*BeatItem
	order []string
}

func NewBeatStore() *BeatStore {
	return &BeatStore{items: make(map[string]*BeatItem)}
}

// Add stores a beat under its name, replacing an existing beat with the same
// name in place. A missing example is generated from the parameter schema.
func (s *BeatStore) Add(input BeatInput) BeatItem {
	item := &BeatItem{
		Name:        input.Name,
		Description: input.Description,
		Params:      cloneParams(input.Params),
		Category:    input.Category,
		Example:     input.Example,
	}
	if strings.TrimSpace(item.Example) == "" {
		item.Example = GenerateExample(item.Name, item.Params)
	}
	if _, exists := s.items[item.Name]; !exists {
		s.order = append(s.order, item.Name)
	}
	s.items[item.Name] = item
	return item.Clone()
}

func (s *BeatStore) Import(items ...BeatItem) {
	for _, in := range items {
		item := in.Clone()
		item.Similarity = nil
		if _, exists := s.items[item.Name]; !exists {
			s.order = append(s.order, item.Name)
		}
		s.items[item.Name] = &item
	}
}

func (s *BeatStore) Update(name string, update BeatUpdate) (BeatItem, bool) {
	item, ok := s.items[name]
	if !ok {
		return BeatItem{}, false
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Params != nil {
		item.Params = cloneParams(update.Params)
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.Example != nil {
		item.Example = *update.Example
	}
	return item.Clone(), true
}

func (s *BeatStore) Delete(name string) bool {
	if _, ok := s.items[name]; !ok {
		return false
	}
	delete(s.items, name)
	for i, key := range s.order {
		if key == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *BeatStore) Get(name string) (BeatItem, bool) {
	item, ok := s.items[name]
	if !ok {
		return BeatItem{}, false
	}
	return item.Clone(), true
}

func (s *BeatStore) Len() int {
	return len(s.order)
}

// All returns every beat in insertion order.
func (s *BeatStore) All() []BeatItem {
	out := make([]BeatItem, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.items[name].Clone())
	}
	return out
}

func (s *BeatStore) ByCategory(category string) []BeatItem {
	out := []BeatItem{}
	for _, item := range s.All() {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Search matches query case-insensitively as a substring of the name or description.
func (s *BeatStore) Search(query string) []BeatItem {
	needle := strings.ToLower(query)
	out := []BeatItem{}
	for _, item := range s.All() {
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			out = append(out, item)
		}
	}
	return out
}

// GenerateExample renders an example invocation with a representative literal
// for each parameter, in parameter name order.
func GenerateExample(name string, params map[string]ParamType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- beat: %s", name)
	if len(params) == 0 {
		return b.String()
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	b.WriteString("\n  params:")
	for _, key := range keys {
		fmt.Fprintf(&b, "\n    %s: %s", key, exampleValue(params[key]))
	}
	return b.String()
}

func exampleValue(t ParamType) string {
	switch t {
	case ParamNumber:
		return "1.0"
	case ParamNumberList:
		return "[0, 1, 2]"
	case ParamString:
		return `"text"`
	case ParamStringList:
		return `["item1", "item2"]`
	default:
		return "null"
	}
}

func (item BeatItem) Clone() BeatItem {
	out := item
	out.Params = cloneParams(item.Params)
	if item.Similarity != nil {
		score := *item.Similarity
		out.Similarity = &score
	}
	return out
}

func cloneParams(params map[string]ParamType) map[string]ParamType {
	out := make(map[string]ParamType, len(params))
	for key, value := range params {
		out[key] = value
	}
	return out
}
