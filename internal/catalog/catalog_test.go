package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAdd(t *testing.T, s *KnowledgeStore, input KnowledgeInput) KnowledgeItem {
	t.Helper()
	item, err := s.Add(input)
	require.NoError(t, err)
	return item
}

func TestKnowledgeStore_IDs(t *testing.T) {
	s := NewKnowledgeStore()

	first := mustAdd(t, s, KnowledgeInput{Category: CategoryRule, Title: "a"})
	second := mustAdd(t, s, KnowledgeInput{Category: CategoryRule, Title: "b"})
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	require.True(t, s.Delete(second.ID))
	assert.False(t, s.Delete(second.ID))

	third := mustAdd(t, s, KnowledgeInput{Category: CategoryExample, Title: "c"})
	assert.Equal(t, 3, third.ID, "ids are never reused")
	assert.Equal(t, 2, s.Len())
}

func TestKnowledgeStore_Update(t *testing.T) {
	s := NewKnowledgeStore()
	item := mustAdd(t, s, KnowledgeInput{Category: CategoryRule, Title: "old", Content: "body", Tags: []string{"x"}})

	title := "new"
	updated, ok, err := s.Update(item.ID, KnowledgeUpdate{Title: &title})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, []string{"x"}, updated.Tags)

	_, ok, err = s.Update(99, KnowledgeUpdate{Title: &title})
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok := s.Get(item.ID)
	require.True(t, ok)
	assert.Equal(t, "new", got.Title)

	_, ok = s.Get(99)
	assert.False(t, ok)
}

func TestKnowledgeStore_RejectsUnknownCategory(t *testing.T) {
	s := NewKnowledgeStore()

	_, err := s.Add(KnowledgeInput{Category: "tip", Title: "a"})
	require.ErrorIs(t, err, ErrInvalidCategory)
	assert.Equal(t, 0, s.Len())

	item := mustAdd(t, s, KnowledgeInput{Category: CategoryRule, Title: "a"})
	assert.Equal(t, 1, item.ID, "rejected input does not consume an id")

	bad := Category("")
	title := "changed"
	_, ok, err := s.Update(item.ID, KnowledgeUpdate{Category: &bad, Title: &title})
	require.ErrorIs(t, err, ErrInvalidCategory)
	assert.True(t, ok)

	got, _ := s.Get(item.ID)
	assert.Equal(t, CategoryRule, got.Category)
	assert.Equal(t, "a", got.Title)
}

func TestKnowledgeStore_ReturnsCopies(t *testing.T) {
	s := NewKnowledgeStore()
	item := mustAdd(t, s, KnowledgeInput{Category: CategoryRule, Title: "a", Tags: []string{"x"}})
	item.Tags[0] = "mutated"

	got, _ := s.Get(item.ID)
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestKnowledgeStore_Queries(t *testing.T) {
	s := NewKnowledgeStore()
	s.Add(KnowledgeInput{Category: CategoryRule, Title: "Timing constants", Content: "use timing.fast"})
	s.Add(KnowledgeInput{Category: CategoryPattern, Title: "Reveal", Content: "appear then highlight", Tags: []string{"Emphasis"}})
	s.Add(KnowledgeInput{Category: CategoryRule, Title: "Safe zone", Content: "stay inside"})

	assert.Len(t, s.ByCategory(CategoryRule), 2)
	assert.Empty(t, s.ByCategory(CategoryAntipattern))

	t.Run("title", func(t *testing.T) {
		found := s.Search("TIMING")
		require.Len(t, found, 1)
		assert.Equal(t, "Timing constants", found[0].Title)
	})

	t.Run("tag", func(t *testing.T) {
		found := s.Search("emphasis")
		require.Len(t, found, 1)
		assert.Equal(t, "Reveal", found[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, s.Search("zoom"))
	})
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryAntipattern.Valid())
	assert.False(t, Category("misc").Valid())
}

func TestBeatStore(t *testing.T) {
	s := NewBeatStore()
	s.Add(BeatInput{Name: "appear", Description: "Fade in", Category: "entrance", Params: map[string]ParamType{"target": ParamString}})
	s.Add(BeatInput{Name: "pulse", Description: "Scale bump", Category: "emphasis", Example: "- beat: pulse"})

	t.Run("keys are names", func(t *testing.T) {
		got, ok := s.Get("appear")
		require.True(t, ok)
		assert.Equal(t, "Fade in", got.Description)

		_, ok = s.Get("missing")
		assert.False(t, ok)
	})

	t.Run("add replaces in place", func(t *testing.T) {
		s.Add(BeatInput{Name: "appear", Description: "Fade and scale in", Category: "entrance"})
		all := s.All()
		require.Len(t, all, 2)
		assert.Equal(t, "appear", all[0].Name)
		assert.Equal(t, "Fade and scale in", all[0].Description)
	})

	t.Run("update keeps example", func(t *testing.T) {
		desc := "Bigger bump"
		updated, ok := s.Update("pulse", BeatUpdate{Description: &desc, Params: map[string]ParamType{"scale": ParamNumber}})
		require.True(t, ok)
		assert.Equal(t, "pulse", updated.Name)
		assert.Equal(t, "- beat: pulse", updated.Example)
		assert.Equal(t, ParamNumber, updated.Params["scale"])
	})

	t.Run("search and category", func(t *testing.T) {
		assert.Len(t, s.Search("BUMP"), 1)
		assert.Len(t, s.ByCategory("entrance"), 1)
	})

	t.Run("delete", func(t *testing.T) {
		assert.True(t, s.Delete("pulse"))
		assert.False(t, s.Delete("pulse"))
		assert.Equal(t, 1, s.Len())
	})
}

func TestGenerateExample(t *testing.T) {
	params := map[string]ParamType{
		"duration": ParamNumber,
		"lines":    ParamNumberList,
		"text":     ParamString,
		"targets":  ParamStringList,
		"easing":   ParamType("function"),
	}
	want := strings.Join([]string{
		"- beat: typewriter",
		"  params:",
		"    duration: 1.0",
		"    easing: null",
		"    lines: [0, 1, 2]",
		`    targets: ["item1", "item2"]`,
		`    text: "text"`,
	}, "\n")
	assert.Equal(t, want, GenerateExample("typewriter", params))
	assert.Equal(t, "- beat: appear", GenerateExample("appear", nil))

	s := NewBeatStore()
	item := s.Add(BeatInput{Name: "zoomTo", Params: map[string]ParamType{"scale": ParamNumber}})
	assert.Equal(t, "- beat: zoomTo\n  params:\n    scale: 1.0", item.Example)
}

func TestExportSQL(t *testing.T) {
	t.Run("knowledge", func(t *testing.T) {
		s := NewKnowledgeStore()
		s.Add(KnowledgeInput{Category: CategoryRule, Title: "Don't guess", Content: "it's 'quoted'", Tags: []string{"o'clock"}})
		s.Add(KnowledgeInput{Category: CategoryExample, Title: "plain", Content: "body"})

		lines := strings.Split(s.ExportSQL(), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t,
			"INSERT INTO knowledge (id, category, title, content, tags) VALUES (1, 'rule', 'Don''t guess', 'it''s ''quoted''', ARRAY['o''clock']::text[]);",
			lines[0])
		assert.Equal(t,
			"INSERT INTO knowledge (id, category, title, content, tags) VALUES (2, 'example', 'plain', 'body', '{}'::text[]);",
			lines[1])
	})

	t.Run("beats", func(t *testing.T) {
		s := NewBeatStore()
		s.Add(BeatInput{Name: "pulse", Description: "it's quick", Category: "emphasis", Params: map[string]ParamType{"target": ParamString}, Example: "- beat: pulse"})
		assert.Equal(t,
			`INSERT INTO beats (name, description, params, category, example_yaml) VALUES ('pulse', 'it''s quick', '{"target":"string"}'::jsonb, 'emphasis', '- beat: pulse');`,
			s.ExportSQL())
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", NewKnowledgeStore().ExportSQL())
	})
}

func TestKnowledgeStore_ImportRoundTrip(t *testing.T) {
	src := NewKnowledgeStore()
	src.Add(KnowledgeInput{Category: CategoryRule, Title: "a", Tags: []string{"x"}})
	doomed, err := src.Add(KnowledgeInput{Category: CategoryRule, Title: "b"})
	require.NoError(t, err)
	src.Add(KnowledgeInput{Category: CategoryPattern, Title: "c"})
	src.Delete(doomed.ID)

	dst := NewKnowledgeStore()
	dst.Import(src.All()...)

	assert.Equal(t, src.All(), dst.All())
	assert.Equal(t, src.ExportSQL(), dst.ExportSQL())

	next, err := dst.Add(KnowledgeInput{Category: CategoryRule, Title: "d"})
	require.NoError(t, err)
	assert.Equal(t, 4, next.ID)
}

func TestBeatStore_ImportRoundTrip(t *testing.T) {
	src := NewBeatStore()
	src.Add(BeatInput{Name: "appear", Params: map[string]ParamType{"target": ParamString}})
	src.Add(BeatInput{Name: "pulse"})

	dst := NewBeatStore()
	dst.Import(src.All()...)
	assert.Equal(t, src.ExportSQL(), dst.ExportSQL())
}

func TestDefaults(t *testing.T) {
	knowledge := NewKnowledgeStore()
	beats := NewBeatStore()
	require.NoError(t, SeedDefaults(knowledge, beats))

	assert.NotEmpty(t, knowledge.ByCategory(CategoryRule))
	assert.NotEmpty(t, knowledge.ByCategory(CategoryAntipattern))
	for _, item := range knowledge.All() {
		assert.True(t, item.Category.Valid(), item.Title)
	}

	appear, ok := beats.Get("appear")
	require.True(t, ok)
	assert.Contains(t, appear.Example, "- beat: appear")

	layouts, err := DefaultLayouts()
	require.NoError(t, err)
	require.NotEmpty(t, layouts)
	assert.Equal(t, "2L-2R", layouts[0].Name)
	assert.Equal(t, []string{"left1", "left2", "right1", "right2"}, layouts[0].SlotNames())
	assert.Contains(t, LayoutsSQL(layouts[:1]), "INSERT INTO layouts")
}
