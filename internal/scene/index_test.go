package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func seededIndex() *Index {
	idx := NewIndex()
	idx.Register(Features{ID: "grid", CardCount: 2, Layout: "grid-2x2", Theme: ThemeLight, Beats: []string{"fadeIn"}, Tags: []string{"list"}})
	idx.Register(Features{ID: "five", CardCount: 5, Layout: "1L-1R", Theme: ThemeDark, Beats: []string{"appear"}, Tags: []string{"cards"}})
	idx.Register(Features{ID: "four", CardCount: 4, Layout: "2L-2R", Theme: ThemeDark, Beats: []string{"appear", "highlightLines"}, Tags: []string{"cards", "code"}})
	idx.Register(Features{ID: "mixed", CardCount: 4, Layout: "2L-2R", Theme: ThemeMixed, Beats: []string{"appear", "zoomIn", "pulse", "crossfade"}})
	return idx
}

func TestIndexSearch_CardsAndLayout(t *testing.T) {
	idx := seededIndex()

	matches := idx.Search(Query{CardCount: intPtr(4), Layout: "2L-2R"}, 0)
	require.Len(t, matches, 3)

	assert.Equal(t, "four", matches[0].Scene.ID)
	assert.GreaterOrEqual(t, matches[0].Score, 18)
	assert.Equal(t, []string{"exact card count (4)", "layout 2L-2R"}, matches[0].Reasons)
	assert.Equal(t, "mixed", matches[1].Scene.ID)
	assert.Equal(t, 18, matches[1].Score)
	assert.Equal(t, "five", matches[2].Scene.ID)
	assert.Equal(t, 5, matches[2].Score)
}

func TestIndexSearch_Scoring(t *testing.T) {
	idx := seededIndex()

	t.Run("bounds", func(t *testing.T) {
		matches := idx.Search(Query{MinCards: intPtr(4), MaxCards: intPtr(4)}, 10)
		require.Len(t, matches, 4)
		assert.Equal(t, 6, matches[0].Score)
		assert.Equal(t, "four", matches[0].Scene.ID)
		assert.Equal(t, 3, matches[2].Score)
	})

	t.Run("beats and tags", func(t *testing.T) {
		matches := idx.Search(Query{Beats: []string{"appear", "highlightLines"}, Tags: []string{"code"}}, 10)
		require.NotEmpty(t, matches)
		assert.Equal(t, "four", matches[0].Scene.ID)
		assert.Equal(t, 3+3+2, matches[0].Score)
	})

	t.Run("theme", func(t *testing.T) {
		matches := idx.Search(Query{Theme: ThemeLight}, 10)
		require.Len(t, matches, 1)
		assert.Equal(t, "grid", matches[0].Scene.ID)
		assert.Equal(t, 4, matches[0].Score)
	})

	t.Run("empty query matches nothing", func(t *testing.T) {
		assert.Empty(t, idx.Search(Query{Semantic: "anything"}, 10))
	})

	t.Run("limit", func(t *testing.T) {
		assert.Len(t, idx.Search(Query{Beats: []string{"appear"}}, 1), 1)
	})
}

func TestIndexSearch_Idempotent(t *testing.T) {
	idx := seededIndex()
	q := Query{CardCount: intPtr(4), Beats: []string{"appear"}}
	assert.Equal(t, idx.Search(q, 5), idx.Search(q, 5))
}

func TestIndexSearch_TiesKeepRegistrationOrder(t *testing.T) {
	idx := NewIndex()
	idx.Register(Features{ID: "b", Layout: "center"})
	idx.Register(Features{ID: "a", Layout: "center"})
	idx.Register(Features{ID: "c", Layout: "center"})
	// Replacing a record must not move it.
	idx.Register(Features{ID: "b", Layout: "center", CardCount: 1})

	matches := idx.Search(Query{Layout: "center"}, 5)
	require.Len(t, matches, 3)
	assert.Equal(t, "b", matches[0].Scene.ID)
	assert.Equal(t, "a", matches[1].Scene.ID)
	assert.Equal(t, "c", matches[2].Scene.ID)
	assert.Equal(t, 3, idx.Len())

	got, ok := idx.Get("b")
	require.True(t, ok)
	assert.Equal(t, 1, got.CardCount)
}

func TestIndexSimilar(t *testing.T) {
	idx := seededIndex()

	t.Run("excludes source", func(t *testing.T) {
		for _, f := range idx.All() {
			for _, match := range idx.Similar(f.ID, 10) {
				assert.NotEqual(t, f.ID, match.Scene.ID)
			}
		}
	})

	t.Run("ranks closest first", func(t *testing.T) {
		matches := idx.Similar("four", 0)
		require.NotEmpty(t, matches)
		assert.LessOrEqual(t, len(matches), DefaultSimilarLimit)
		assert.Equal(t, "mixed", matches[0].Scene.ID)
	})

	t.Run("mixed theme is not used as a constraint", func(t *testing.T) {
		for _, match := range idx.Similar("mixed", 10) {
			for _, reason := range match.Reasons {
				assert.NotContains(t, reason, "theme")
			}
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.Empty(t, idx.Similar("missing", 3))
	})
}

func TestIndexLookups(t *testing.T) {
	idx := seededIndex()

	_, ok := idx.Get("missing")
	assert.False(t, ok)

	assert.Len(t, idx.All(), 4)
	assert.Len(t, idx.ByLayout("2L-2R"), 2)
	assert.Empty(t, idx.ByLayout("grid-3x2"))
	assert.Len(t, idx.ByCardCount(4), 2)
	assert.Len(t, idx.ByCardCount(5), 1)
}
