package scene

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidRule = errors.New("invalid analyzer rule")

// Rule maps a name (beat, layout preset or tag) to the pattern that detects it.
type Rule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`

	re *regexp.Regexp
}

// TimingConstant is a named duration reference such as timing.fast.
type TimingConstant struct {
	Name    string  `yaml:"name"`
	Seconds float64 `yaml:"seconds"`
}

// Rules is the detector table used by the Analyzer. Beat rules are all
// evaluated; layout rules are evaluated in order and the first match wins.
type Rules struct {
	Beats        []Rule           `yaml:"beats"`
	Layouts      []Rule           `yaml:"layouts"`
	Tags         []Rule           `yaml:"tags"`
	DarkMarkers  []string         `yaml:"dark_markers"`
	LightMarkers []string         `yaml:"light_markers"`
	SafeMarkers  []string         `yaml:"safe_markers"`
	Timing       []TimingConstant `yaml:"timing"`
}

func beatRule(name string) Rule {
	return Rule{Name: name, Pattern: `\b` + regexp.QuoteMeta(name) + `\s*\(`}
}

func layoutRule(name string) Rule {
	return Rule{
		Name:    name,
		Pattern: `(?i)(?:layout|preset)\w*\s*[:=(,]\s*['"` + "`" + `]` + regexp.QuoteMeta(name) + `['"` + "`" + `]`,
	}
}

// backgroundMarkers expands colours into the declarations that paint a scene
// background. A bare colour is not a theme signal: white text on a dark
// background is still a dark scene.
func backgroundMarkers(colors ...string) []string {
	prefixes := []string{
		"view.fill('", `view.fill("`,
		"background: '", `background: "`,
		"backgroundcolor: '", `backgroundcolor: "`,
		"bg: '", `bg: "`,
	}
	markers := make([]string, 0, len(colors)*len(prefixes))
	for _, color := range colors {
		for _, prefix := range prefixes {
			markers = append(markers, prefix+color)
		}
	}
	return markers
}

// DefaultRules returns the built-in detector table. Each call returns a fresh
// copy that callers may extend before passing it to NewAnalyzer.
func DefaultRules() Rules {
	return Rules{
		Beats: []Rule{
			beatRule("appear"),
			beatRule("fadeIn"),
			beatRule("fadeOut"),
			beatRule("slideIn"),
			beatRule("staggerIn"),
			beatRule("highlight"),
			beatRule("highlightLines"),
			beatRule("highlightCell"),
			beatRule("zoomIn"),
			beatRule("zoomOut"),
			beatRule("zoomTo"),
			beatRule("typewriter"),
			beatRule("crossfade"),
			beatRule("pulse"),
			beatRule("drawArrow"),
			beatRule("countUp"),
		},
		Layouts: []Rule{
			layoutRule("2L-2R"),
			layoutRule("1L-2R"),
			layoutRule("2L-1R"),
			layoutRule("1L-1R"),
			layoutRule("grid-2x2"),
			layoutRule("grid-3x2"),
			layoutRule("title-body"),
			layoutRule("stack-vertical"),
			layoutRule("stack-horizontal"),
			layoutRule("center"),
		},
		Tags: []Rule{
			{Name: "code", Pattern: `<Code\b|\bCodeBlock\b`},
			{Name: "table", Pattern: `<Table\b|\bTable\(`},
			{Name: "chart", Pattern: `(?i)\b(?:bar|line|pie)?chart\b`},
			{Name: "diagram", Pattern: `<(?:Arrow|Connector|Line)\b|\bdrawArrow\s*\(`},
			{Name: "comparison", Pattern: `(?i)\b(?:vs|versus|compare|comparison)\b`},
			{Name: "list", Pattern: `(?i)\bbullets?\b|<List\b`},
			{Name: "image", Pattern: `<Img\b|<Image\b`},
			{Name: "math", Pattern: `<Latex\b|\bTex\(`},
			{Name: "cards", Pattern: `<Card\b`},
			{Name: "emphasis", Pattern: `\bhighlight\w*\s*\(|\bpulse\s*\(`},
			{Name: "camera", Pattern: `\bzoom(?:In|Out|To)\s*\(|<Camera\b`},
			{Name: "text", Pattern: `\btypewriter\s*\(|<Txt\b`},
		},
		DarkMarkers: append([]string{
			"theme: 'dark'", `theme: "dark"`, `theme="dark"`, "darktheme", "dark_bg",
		}, backgroundMarkers("#0d1117", "#1e1e1e", "#141414")...),
		LightMarkers: append([]string{
			"theme: 'light'", `theme: "light"`, `theme="light"`, "lighttheme", "light_bg",
		}, backgroundMarkers("#ffffff", "#f5f5f5", "#fafafa")...),
		SafeMarkers: []string{"safe_zone", "safezone", "slots.", "getslot(", "layout.slots"},
		Timing: []TimingConstant{
			{Name: "fast", Seconds: 0.3},
			{Name: "medium", Seconds: 0.6},
			{Name: "slow", Seconds: 1.1},
		},
	}
}

// LoadRules reads a YAML rule table. Sections present in the file replace the
// corresponding default sections; omitted sections keep their defaults.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("loading rules: %w", err)
	}

	var file Rules
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Rules{}, fmt.Errorf("loading rules: %w", err)
	}

	rules := DefaultRules()
	if len(file.Beats) > 0 {
		rules.Beats = file.Beats
	}
	if len(file.Layouts) > 0 {
		rules.Layouts = file.Layouts
	}
	if len(file.Tags) > 0 {
		rules.Tags = file.Tags
	}
	if len(file.DarkMarkers) > 0 {
		rules.DarkMarkers = file.DarkMarkers
	}
	if len(file.LightMarkers) > 0 {
		rules.LightMarkers = file.LightMarkers
	}
	if len(file.SafeMarkers) > 0 {
		rules.SafeMarkers = file.SafeMarkers
	}
	if len(file.Timing) > 0 {
		rules.Timing = file.Timing
	}

	if err := rules.compile(); err != nil {
		return Rules{}, fmt.Errorf("loading rules: %w", err)
	}
	return rules, nil
}

func (r *Rules) compile() error {
	sections := []struct {
		name  string
		rules []Rule
	}{
		{"beat", r.Beats},
		{"layout", r.Layouts},
		{"tag", r.Tags},
	}
	for _, section := range sections {
		for i := range section.rules {
			rule := &section.rules[i]
			if strings.TrimSpace(rule.Name) == "" {
				return fmt.Errorf("%w: %s rule %d name is required", ErrInvalidRule, section.name, i)
			}
			if strings.TrimSpace(rule.Pattern) == "" {
				return fmt.Errorf("%w: %s rule %s pattern is required", ErrInvalidRule, section.name, rule.Name)
			}
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return fmt.Errorf("%w: %s rule %s: %v", ErrInvalidRule, section.name, rule.Name, err)
			}
			rule.re = re
		}
	}

	seen := make(map[string]struct{})
	for _, rule := range r.Beats {
		if _, exists := seen[rule.Name]; exists {
			return fmt.Errorf("%w: duplicate beat rule: %s", ErrInvalidRule, rule.Name)
		}
		seen[rule.Name] = struct{}{}
	}

	for i := range r.DarkMarkers {
		r.DarkMarkers[i] = strings.ToLower(r.DarkMarkers[i])
	}
	for i := range r.LightMarkers {
		r.LightMarkers[i] = strings.ToLower(r.LightMarkers[i])
	}
	for i := range r.SafeMarkers {
		r.SafeMarkers[i] = strings.ToLower(r.SafeMarkers[i])
	}
	return nil
}

func (r Rules) clone() Rules {
	return Rules{
		Beats:        append([]Rule(nil), r.Beats...),
		Layouts:      append([]Rule(nil), r.Layouts...),
		Tags:         append([]Rule(nil), r.Tags...),
		DarkMarkers:  append([]string(nil), r.DarkMarkers...),
		LightMarkers: append([]string(nil), r.LightMarkers...),
		SafeMarkers:  append([]string(nil), r.SafeMarkers...),
		Timing:       append([]TimingConstant(nil), r.Timing...),
	}
}

// LayoutNames lists the layout presets the table can detect, in table order.
func (r *Rules) LayoutNames() []string {
	names := make([]string, 0, len(r.Layouts))
	for _, rule := range r.Layouts {
		names = append(names, rule.Name)
	}
	return names
}
