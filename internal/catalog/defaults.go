package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaults struct {
	Knowledge []KnowledgeInput `yaml:"knowledge"`
	Beats     []BeatInput      `yaml:"beats"`
	Layouts   []LayoutItem     `yaml:"layouts"`
}

func loadDefaults() (*defaults, error) {
	var d defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		return nil, fmt.Errorf("parsing built-in catalog: %w", err)
	}
	return &d, nil
}

// SeedDefaults adds the built-in knowledge items and beats to the stores.
func SeedDefaults(knowledge *KnowledgeStore, beats *BeatStore) error {
	d, err := loadDefaults()
	if err != nil {
		return err
	}
	for _, input := range d.Knowledge {
		if _, err := knowledge.Add(input); err != nil {
			return fmt.Errorf("seeding knowledge %q: %w", input.Title, err)
		}
	}
	for _, input := range d.Beats {
		beats.Add(input)
	}
	return nil
}

// DefaultLayouts returns the built-in layout presets.
func DefaultLayouts() ([]LayoutItem, error) {
	d, err := loadDefaults()
	if err != nil {
		return nil, err
	}
	return d.Layouts, nil
}
