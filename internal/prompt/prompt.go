package prompt

import (
	"fmt"
	"strings"

	"motionkb/internal/catalog"
)

// Context holds the text blocks handed to a downstream generator. Any block
// may be empty.
type Context struct {
	Rules    string `json:"rules"`
	Beats    string `json:"beats"`
	Layouts  string `json:"layouts"`
	Examples string `json:"examples"`
}

// BuildContext renders retrieval results into text blocks, preserving the
// order of each input. Pattern and antipattern items are not rendered.
func BuildContext(knowledge []catalog.KnowledgeItem, beats []catalog.BeatItem, layouts []catalog.LayoutItem) Context {
	var rules, examples []string
	for _, item := range knowledge {
		line := fmt.Sprintf("[%s] %s", item.Title, item.Content)
		switch item.Category {
		case catalog.CategoryRule:
			rules = append(rules, line)
		case catalog.CategoryExample:
			examples = append(examples, line)
		}
	}

	beatBlocks := make([]string, 0, len(beats))
	for _, beat := range beats {
		block := fmt.Sprintf("%s: %s", beat.Name, beat.Description)
		if beat.Example != "" {
			block += "\n  Example: " + indentContinuation(beat.Example)
		}
		beatBlocks = append(beatBlocks, block)
	}

	layoutBlocks := make([]string, 0, len(layouts))
	for _, layout := range layouts {
		block := fmt.Sprintf("%s: %s", layout.Name, layout.Description)
		if names := layout.SlotNames(); len(names) > 0 {
			block += "\n  Slots: " + strings.Join(names, ", ")
		}
		if layout.Example != "" {
			block += "\n  Example: " + indentContinuation(layout.Example)
		}
		layoutBlocks = append(layoutBlocks, block)
	}

	return Context{
		Rules:    strings.Join(rules, "\n"),
		Beats:    strings.Join(beatBlocks, "\n\n"),
		Layouts:  strings.Join(layoutBlocks, "\n\n"),
		Examples: strings.Join(examples, "\n"),
	}
}

// Format joins the non-empty blocks under RULES, LAYOUTS, BEATS and EXAMPLES
// headings, in that order, separated by a blank line.
func Format(ctx Context) string {
	sections := []struct {
		label string
		body  string
	}{
		{"RULES", ctx.Rules},
		{"LAYOUTS", ctx.Layouts},
		{"BEATS", ctx.Beats},
		{"EXAMPLES", ctx.Examples},
	}

	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if strings.TrimSpace(s.body) == "" {
			continue
		}
		parts = append(parts, s.label+":\n"+s.body)
	}
	return strings.Join(parts, "\n\n")
}

// multi-line examples stay under their label
func indentContinuation(text string) string {
	return strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\n    ")
}
