package scene

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
	ThemeMixed Theme = "mixed"
)

// Features is the structured record the Analyzer extracts from one scene source.
// Records are treated as immutable once produced.
type Features struct {
	ID              string   `json:"id" yaml:"id"`
	CardCount       int      `json:"card_count" yaml:"card_count"`
	Layout          string   `json:"layout,omitempty" yaml:"layout,omitempty"`
	Theme           Theme    `json:"theme" yaml:"theme"`
	Beats           []string `json:"beats" yaml:"beats"`
	HasHighlight    bool     `json:"has_highlight" yaml:"has_highlight"`
	HasZoom         bool     `json:"has_zoom" yaml:"has_zoom"`
	HasTypewriter   bool     `json:"has_typewriter" yaml:"has_typewriter"`
	HasCrossfade    bool     `json:"has_crossfade" yaml:"has_crossfade"`
	HasTable        bool     `json:"has_table" yaml:"has_table"`
	DurationSeconds int      `json:"duration_seconds" yaml:"duration_seconds"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags            []string `json:"tags" yaml:"tags"`
}

func (f *Features) HasBeat(name string) bool {
	return containsString(f.Beats, name)
}

func (f *Features) HasTag(tag string) bool {
	return containsString(f.Tags, tag)
}

// Query constrains an Index search. Nil and empty fields do not constrain.
type Query struct {
	CardCount *int
	MinCards  *int
	MaxCards  *int
	Layout    string
	Theme     Theme
	Beats     []string
	Tags      []string
	// Semantic is reserved for embedding-backed scene search and is not scored.
	Semantic string
}

type Match struct {
	Scene   *Features `json:"scene"`
	Score   int       `json:"score"`
	Reasons []string  `json:"reasons"`
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
