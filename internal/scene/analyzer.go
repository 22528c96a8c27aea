package scene

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	WarnNoLayout = "no layout preset detected; position content with a named layout preset"
	WarnNoBeats  = "cards detected but no beats found; the scene may render as a static slide"

	cardKeywordDivisor = 3
	magicLowerBound    = 0.1
	magicUpperBound    = 3.0
)

var (
	jsxCardPattern     = regexp.MustCompile(`(?:^|[\s({,>])<Card\b`)
	typedCardPattern   = regexp.MustCompile(`\b\w+\s*<\s*Card\s*>`)
	cardKeywordPattern = regexp.MustCompile(`(?i)\bcard`)
	waitPattern        = regexp.MustCompile(`\bwait(?:For)?\s*\(\s*(\d+(?:\.\d+)?)\s*\)`)
	timingPattern      = regexp.MustCompile(`(?i)\btiming\.(\w+)\b`)
	decimalPattern     = regexp.MustCompile(`(?:^|[^\w.])(\d+\.\d+)\b`)
	coordinatePattern  = regexp.MustCompile(`(?:\b(?:x|y)\s*[:=]\s*\{?\s*|\bposition\s*[:=]\s*\{?\[?\s*)-?\d{3,}`)
	tablePattern       = regexp.MustCompile(`<Table\b|\bTable\(`)
	descriptionPattern = regexp.MustCompile(`@description\s+([^\n*]+)`)
)

type Analysis struct {
	Features    Features `json:"features"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// Analyzer is a pattern-based classifier for scene source. It holds no state
// beyond its compiled rule table, so Analyze is a pure function of its input.
type Analyzer struct {
	rules Rules
}

// NewAnalyzer compiles a private copy of rules; the caller's table is left
// untouched and may be reused.
func NewAnalyzer(rules Rules) (*Analyzer, error) {
	rules = rules.clone()
	if err := rules.compile(); err != nil {
		return nil, err
	}
	return &Analyzer{rules: rules}, nil
}

// NewAnalyzerFromFile builds an analyzer from a YAML rule table, or from
// DefaultRules when path is empty.
func NewAnalyzerFromFile(path string) (*Analyzer, error) {
	rules := DefaultRules()
	if path != "" {
		var err error
		rules, err = LoadRules(path)
		if err != nil {
			return nil, err
		}
	}
	return NewAnalyzer(rules)
}

func (a *Analyzer) Rules() Rules {
	return a.rules.clone()
}

func (a *Analyzer) Analyze(sceneID, source string) Analysis {
	lower := strings.ToLower(source)

	features := Features{
		ID:              sceneID,
		CardCount:       countCards(source),
		Layout:          a.detectLayout(source),
		Theme:           a.detectTheme(lower),
		Beats:           a.detectBeats(source),
		DurationSeconds: a.estimateDuration(source),
		Description:     detectDescription(source),
		Tags:            a.detectTags(source),
	}

	for _, beat := range features.Beats {
		switch {
		case strings.HasPrefix(beat, "highlight"):
			features.HasHighlight = true
		case strings.HasPrefix(beat, "zoom"):
			features.HasZoom = true
		case beat == "typewriter":
			features.HasTypewriter = true
		case beat == "crossfade":
			features.HasCrossfade = true
		}
	}
	features.HasTable = features.HasBeat("highlightCell") || tablePattern.MatchString(source)

	warnings := []string{}
	if features.Layout == "" {
		warnings = append(warnings, WarnNoLayout)
	}
	if features.CardCount > 0 && len(features.Beats) == 0 {
		warnings = append(warnings, WarnNoBeats)
	}

	suggestions := []string{}
	if magic := a.magicNumbers(source); len(magic) > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"replace magic timing values %s with named timing constants (%s)",
			strings.Join(magic, ", "), a.timingSummary(),
		))
	}
	if coordinatePattern.MatchString(source) && !a.hasSafeMarker(lower) {
		suggestions = append(suggestions,
			"raw coordinates found without a safe zone or slot layout; place content through layout slots")
	}

	return Analysis{Features: features, Warnings: warnings, Suggestions: suggestions}
}

func (a *Analyzer) detectBeats(source string) []string {
	beats := []string{}
	for _, rule := range a.rules.Beats {
		if rule.re.MatchString(source) {
			beats = append(beats, rule.Name)
		}
	}
	return beats
}

func (a *Analyzer) detectLayout(source string) string {
	for _, rule := range a.rules.Layouts {
		if rule.re.MatchString(source) {
			return rule.Name
		}
	}
	return ""
}

func (a *Analyzer) detectTheme(lower string) Theme {
	dark := containsAny(lower, a.rules.DarkMarkers)
	light := containsAny(lower, a.rules.LightMarkers)
	switch {
	case dark && light:
		return ThemeMixed
	case light:
		return ThemeLight
	default:
		return ThemeDark
	}
}

func (a *Analyzer) detectTags(source string) []string {
	tags := []string{}
	seen := make(map[string]struct{})
	for _, rule := range a.rules.Tags {
		if _, ok := seen[rule.Name]; ok {
			continue
		}
		if rule.re.MatchString(source) {
			seen[rule.Name] = struct{}{}
			tags = append(tags, rule.Name)
		}
	}
	return tags
}

func (a *Analyzer) estimateDuration(source string) int {
	var total float64
	for _, match := range waitPattern.FindAllStringSubmatch(source, -1) {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		total += value
	}
	for _, match := range timingPattern.FindAllStringSubmatch(source, -1) {
		if seconds, ok := a.timingSeconds(match[1]); ok {
			total += seconds
		}
	}
	if total < 0 {
		return 0
	}
	return int(math.Round(total))
}

func (a *Analyzer) timingSeconds(name string) (float64, bool) {
	for _, constant := range a.rules.Timing {
		if strings.EqualFold(constant.Name, name) {
			return constant.Seconds, true
		}
	}
	return 0, false
}

func (a *Analyzer) magicNumbers(source string) []string {
	var found []string
	seen := make(map[string]struct{})
	for _, match := range decimalPattern.FindAllStringSubmatch(source, -1) {
		literal := match[1]
		if _, ok := seen[literal]; ok {
			continue
		}
		value, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			continue
		}
		if value <= magicLowerBound || value >= magicUpperBound || a.isTimingValue(value) {
			continue
		}
		seen[literal] = struct{}{}
		found = append(found, literal)
	}
	return found
}

func (a *Analyzer) isTimingValue(value float64) bool {
	for _, constant := range a.rules.Timing {
		if math.Abs(constant.Seconds-value) < 1e-9 {
			return true
		}
	}
	return false
}

func (a *Analyzer) timingSummary() string {
	parts := make([]string, 0, len(a.rules.Timing))
	for _, constant := range a.rules.Timing {
		parts = append(parts, fmt.Sprintf("timing.%s=%s", constant.Name, strconv.FormatFloat(constant.Seconds, 'f', -1, 64)))
	}
	return strings.Join(parts, ", ")
}

func (a *Analyzer) hasSafeMarker(lower string) bool {
	return containsAny(lower, a.rules.SafeMarkers)
}

func countCards(source string) int {
	jsx := len(jsxCardPattern.FindAllStringIndex(source, -1))
	typed := len(typedCardPattern.FindAllStringIndex(source, -1))
	keywords := len(cardKeywordPattern.FindAllStringIndex(source, -1)) / cardKeywordDivisor
	return max(jsx, typed, keywords, 0)
}

func detectDescription(source string) string {
	match := descriptionPattern.FindStringSubmatch(source)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if needle != "" && strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
