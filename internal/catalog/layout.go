package catalog

import "sort"

// Slot is a named rectangle in a layout preset, in scene coordinates.
type Slot struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type LayoutItem struct {
	Name        string          `json:"name" yaml:"name"`
	Slots       map[string]Slot `json:"slots" yaml:"slots"`
	Description string          `json:"description" yaml:"description"`
	Example     string          `json:"example" yaml:"example"`
	Similarity  *float64        `json:"similarity,omitempty" yaml:"-"`
}

// SlotNames returns the slot names in sorted order.
func (l LayoutItem) SlotNames() []string {
	names := make([]string, 0, len(l.Slots))
	for name := range l.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l LayoutItem) Clone() LayoutItem {
	out := l
	out.Slots = make(map[string]Slot, len(l.Slots))
	for name, slot := range l.Slots {
		out.Slots[name] = slot
	}
	if l.Similarity != nil {
		score := *l.Similarity
		out.Similarity = &score
	}
	return out
}
