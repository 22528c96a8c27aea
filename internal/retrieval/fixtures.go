package retrieval

import "motionkb/internal/catalog"

func score(v float64) *float64 { return &v }

// Offline fixtures. Scores are fixed and strictly descending within each kind.
var (
	offlineKnowledge = []catalog.KnowledgeItem{
		{
			ID:         1,
			Category:   catalog.CategoryRule,
			Title:      "Use layout presets for card placement",
			Content:    "Place cards through a named layout preset and its slots. Never position cards with raw pixel coordinates.",
			Tags:       []string{"layout", "cards"},
			Similarity: score(0.95),
		},
		{
			ID:         2,
			Category:   catalog.CategoryRule,
			Title:      "Use timing constants",
			Content:    "Animation durations come from timing.fast (0.3s), timing.medium (0.6s) and timing.slow (1.1s).",
			Tags:       []string{"timing", "beats"},
			Similarity: score(0.91),
		},
		{
			ID:         3,
			Category:   catalog.CategoryExample,
			Title:      "Four card comparison",
			Content:    "useLayout('2L-2R'); yield* staggerIn(cards, timing.fast); yield* highlight(cards[1], timing.medium);",
			Tags:       []string{"cards", "comparison"},
			Similarity: score(0.87),
		},
		{
			ID:         4,
			Category:   catalog.CategoryPattern,
			Title:      "Reveal then emphasise",
			Content:    "Bring elements in with appear or staggerIn, pause, then highlight the element being discussed.",
			Tags:       []string{"beats", "emphasis"},
			Similarity: score(0.82),
		},
		{
			ID:         5,
			Category:   catalog.CategoryAntipattern,
			Title:      "Hardcoded coordinates",
			Content:    "Setting x and y to raw pixel values breaks when the layout changes.",
			Tags:       []string{"layout"},
			Similarity: score(0.78),
		},
		{
			ID:         6,
			Category:   catalog.CategoryRule,
			Title:      "Keep content inside the safe zone",
			Content:    "Text and cards stay inside SAFE_ZONE so nothing is clipped on export.",
			Tags:       []string{"layout", "safe-zone"},
			Similarity: score(0.74),
		},
	}

	offlineBeats = []catalog.BeatItem{
		{
			Name:        "appear",
			Description: "Fade and scale an element into view.",
			Params:      map[string]catalog.ParamType{"target": catalog.ParamString, "duration": catalog.ParamNumber},
			Category:    "entrance",
			Example:     "- beat: appear\n  params:\n    duration: 1.0\n    target: \"text\"",
			Similarity:  score(0.93),
		},
		{
			Name:        "highlight",
			Description: "Draw attention to an element with an accent outline.",
			Params:      map[string]catalog.ParamType{"target": catalog.ParamString},
			Category:    "emphasis",
			Example:     "- beat: highlight\n  params:\n    target: \"text\"",
			Similarity:  score(0.88),
		},
		{
			Name:        "staggerIn",
			Description: "Reveal a list of elements one after another.",
			Params:      map[string]catalog.ParamType{"targets": catalog.ParamStringList, "delay": catalog.ParamNumber},
			Category:    "entrance",
			Example:     "- beat: staggerIn\n  params:\n    delay: 1.0\n    targets: [\"item1\", \"item2\"]",
			Similarity:  score(0.84),
		},
		{
			Name:        "crossfade",
			Description: "Swap one element for another with overlapping fades.",
			Params:      map[string]catalog.ParamType{"from": catalog.ParamString, "to": catalog.ParamString},
			Category:    "transition",
			Example:     "- beat: crossfade\n  params:\n    from: \"text\"\n    to: \"text\"",
			Similarity:  score(0.79),
		},
		{
			Name:        "zoomTo",
			Description: "Move the camera onto a slot or element.",
			Params:      map[string]catalog.ParamType{"target": catalog.ParamString, "scale": catalog.ParamNumber},
			Category:    "camera",
			Example:     "- beat: zoomTo\n  params:\n    scale: 1.0\n    target: \"text\"",
			Similarity:  score(0.73),
		},
	}

	offlineLayouts = []catalog.LayoutItem{
		{
			Name:        "2L-2R",
			Description: "Two cards stacked on the left and two on the right.",
			Slots: map[string]catalog.Slot{
				"left1":  {X: -480, Y: -200, Width: 800, Height: 340},
				"left2":  {X: -480, Y: 200, Width: 800, Height: 340},
				"right1": {X: 480, Y: -200, Width: 800, Height: 340},
				"right2": {X: 480, Y: 200, Width: 800, Height: 340},
			},
			Example:    "const layout = useLayout('2L-2R');",
			Similarity: score(0.9),
		},
		{
			Name:        "title-body",
			Description: "A heading across the top and one large content area below.",
			Slots: map[string]catalog.Slot{
				"title": {X: 0, Y: -400, Width: 1600, Height: 140},
				"body":  {X: 0, Y: 80, Width: 1600, Height: 760},
			},
			Example:    "const layout = useLayout('title-body');",
			Similarity: score(0.83),
		},
		{
			Name:        "center",
			Description: "A single focal element in the middle of the frame.",
			Slots: map[string]catalog.Slot{
				"main": {X: 0, Y: 0, Width: 1200, Height: 720},
			},
			Example:    "const layout = useLayout('center');",
			Similarity: score(0.76),
		},
	}
)
