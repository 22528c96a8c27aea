package scene

import (
	"fmt"
	"sort"
)

const (
	DefaultSearchLimit  = 5
	DefaultSimilarLimit = 3

	scoreExactCards  = 10
	scoreNearCards   = 5
	scoreMinCards    = 3
	scoreMaxCards    = 3
	scoreLayout      = 8
	scoreTheme       = 4
	scorePerBeat     = 3
	scorePerTag      = 2
	similarBeatCount = 3
)

// Index is an in-memory collection of scene features keyed by scene id.
// It is not safe for concurrent mutation; callers serialise Register.
type Index struct {
	scenes map[string]*Features
	order  []string
}

func NewIndex() *Index {
	return &Index{scenes: make(map[string]*Features)}
}

// Register stores features by id. Re-registering an id replaces the record
// but keeps its original position in iteration order.
func (x *Index) Register(features Features) {
	record := features
	if _, exists := x.scenes[record.ID]; !exists {
		x.order = append(x.order, record.ID)
	}
	x.scenes[record.ID] = &record
}

func (x *Index) Len() int {
	return len(x.order)
}

func (x *Index) Get(id string) (*Features, bool) {
	f, ok := x.scenes[id]
	return f, ok
}

func (x *Index) All() []*Features {
	out := make([]*Features, 0, len(x.order))
	for _, id := range x.order {
		out = append(out, x.scenes[id])
	}
	return out
}

func (x *Index) ByLayout(layout string) []*Features {
	out := []*Features{}
	for _, f := range x.All() {
		if f.Layout == layout {
			out = append(out, f)
		}
	}
	return out
}

func (x *Index) ByCardCount(count int) []*Features {
	out := []*Features{}
	for _, f := range x.All() {
		if f.CardCount == count {
			out = append(out, f)
		}
	}
	return out
}

// Search scores every registered scene against q and returns at most limit
// matches, best first. Scenes scoring zero are omitted.
func (x *Index) Search(q Query, limit int) []Match {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	matches := x.rank(q)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Similar finds scenes resembling the scene with the given id. The source
// scene itself is never part of the result. Unknown ids yield an empty result.
func (x *Index) Similar(id string, limit int) []Match {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	source, ok := x.scenes[id]
	if !ok {
		return []Match{}
	}

	count := source.CardCount
	q := Query{CardCount: &count, Layout: source.Layout}
	if source.Theme != ThemeMixed {
		q.Theme = source.Theme
	}
	beats := source.Beats
	if len(beats) > similarBeatCount {
		beats = beats[:similarBeatCount]
	}
	q.Beats = append([]string{}, beats...)

	out := []Match{}
	for _, match := range x.rank(q) {
		if match.Scene.ID == id {
			continue
		}
		out = append(out, match)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (x *Index) rank(q Query) []Match {
	matches := []Match{}
	for _, f := range x.All() {
		score, reasons := scoreScene(f, q)
		if score == 0 {
			continue
		}
		matches = append(matches, Match{Scene: f, Score: score, Reasons: reasons})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func scoreScene(f *Features, q Query) (int, []string) {
	score := 0
	reasons := []string{}

	if q.CardCount != nil {
		switch diff := f.CardCount - *q.CardCount; {
		case diff == 0:
			score += scoreExactCards
			reasons = append(reasons, fmt.Sprintf("exact card count (%d)", f.CardCount))
		case diff == 1 || diff == -1:
			score += scoreNearCards
			reasons = append(reasons, fmt.Sprintf("similar card count (%d vs %d)", f.CardCount, *q.CardCount))
		}
	}
	if q.MinCards != nil && f.CardCount >= *q.MinCards {
		score += scoreMinCards
		reasons = append(reasons, fmt.Sprintf("at least %d cards", *q.MinCards))
	}
	if q.MaxCards != nil && f.CardCount <= *q.MaxCards {
		score += scoreMaxCards
		reasons = append(reasons, fmt.Sprintf("at most %d cards", *q.MaxCards))
	}
	if q.Layout != "" && f.Layout == q.Layout {
		score += scoreLayout
		reasons = append(reasons, fmt.Sprintf("layout %s", f.Layout))
	}
	if q.Theme != "" && f.Theme == q.Theme {
		score += scoreTheme
		reasons = append(reasons, fmt.Sprintf("theme %s", f.Theme))
	}
	for _, beat := range q.Beats {
		if f.HasBeat(beat) {
			score += scorePerBeat
			reasons = append(reasons, fmt.Sprintf("uses beat %s", beat))
		}
	}
	for _, tag := range q.Tags {
		if f.HasTag(tag) {
			score += scorePerTag
			reasons = append(reasons, fmt.Sprintf("tagged %s", tag))
		}
	}

	return score, reasons
}
