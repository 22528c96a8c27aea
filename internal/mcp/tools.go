package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"motionkb/internal/catalog"
	"motionkb/internal/prompt"
	"motionkb/internal/retrieval"
	"motionkb/internal/scene"
)

type SearchKnowledgeInput struct {
	Query    string `json:"query" jsonschema:"what the scene needs guidance on"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum results, default 5"`
	Category string `json:"category,omitempty" jsonschema:"rule, example, pattern or antipattern"`
}

type SearchBeatsInput struct {
	Query    string `json:"query" jsonschema:"the effect being looked for"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum results, default 5"`
	Category string `json:"category,omitempty" jsonschema:"beat category such as entrance or emphasis"`
}

type SearchLayoutsInput struct {
	Query string `json:"query" jsonschema:"how content should be arranged"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum results, default 3"`
}

type PromptContextInput struct {
	Query string `json:"query" jsonschema:"description of the scene to generate"`
}

type AnalyzeSceneInput struct {
	SceneID  string `json:"scene_id" jsonschema:"identifier for the scene"`
	Source   string `json:"source" jsonschema:"scene source code"`
	Register bool   `json:"register,omitempty" jsonschema:"add the result to the scene index"`
}

type SearchScenesInput struct {
	CardCount *int     `json:"card_count,omitempty" jsonschema:"exact number of cards"`
	MinCards  *int     `json:"min_cards,omitempty" jsonschema:"minimum number of cards"`
	MaxCards  *int     `json:"max_cards,omitempty" jsonschema:"maximum number of cards"`
	Layout    string   `json:"layout,omitempty" jsonschema:"layout preset name"`
	Theme     string   `json:"theme,omitempty" jsonschema:"dark, light or mixed"`
	Beats     []string `json:"beats,omitempty" jsonschema:"beats the scene should use"`
	Tags      []string `json:"tags,omitempty" jsonschema:"tags the scene should carry"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum results, default 5"`
}

type SimilarScenesInput struct {
	SceneID string `json:"scene_id" jsonschema:"scene to compare against"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum results, default 3"`
}

type PromptContextOutput struct {
	Rules     string `json:"rules"`
	Beats     string `json:"beats"`
	Layouts   string `json:"layouts"`
	Examples  string `json:"examples"`
	Formatted string `json:"formatted"`
}

type ScenesOutput struct {
	Matches []scene.Match `json:"matches"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_knowledge",
		Description: "Find animation rules, examples and patterns relevant to a request",
	}, s.handleSearchKnowledge)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_beats",
		Description: "Find reusable animation beats with their parameters and an example",
	}, s.handleSearchBeats)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_layouts",
		Description: "Find layout presets and their named slots",
	}, s.handleSearchLayouts)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_prompt_context",
		Description: "Assemble rules, beats, layouts and examples into one context block",
	}, s.handlePromptContext)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "analyze_scene",
		Description: "Extract features, warnings and suggestions from scene source",
	}, s.handleAnalyzeScene)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_scenes",
		Description: "Rank indexed scenes against card count, layout, theme, beats and tags",
	}, s.handleSearchScenes)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "find_similar_scenes",
		Description: "Find indexed scenes resembling a given scene",
	}, s.handleSimilarScenes)
}

func (s *Server) handleSearchKnowledge(ctx context.Context, req *sdk.CallToolRequest, input SearchKnowledgeInput) (*sdk.CallToolResult, retrieval.Result[catalog.KnowledgeItem], error) {
	if input.Query == "" {
		return nil, retrieval.Result[catalog.KnowledgeItem]{}, fmt.Errorf("query is required")
	}
	if input.Category != "" && !catalog.Category(input.Category).Valid() {
		return nil, retrieval.Result[catalog.KnowledgeItem]{}, fmt.Errorf("unknown category %q", input.Category)
	}
	result, err := s.service.SearchKnowledge(ctx, input.Query, input.Limit, input.Category)
	if err != nil {
		return nil, retrieval.Result[catalog.KnowledgeItem]{}, err
	}
	return nil, result, nil
}

func (s *Server) handleSearchBeats(ctx context.Context, req *sdk.CallToolRequest, input SearchBeatsInput) (*sdk.CallToolResult, retrieval.Result[catalog.BeatItem], error) {
	if input.Query == "" {
		return nil, retrieval.Result[catalog.BeatItem]{}, fmt.Errorf("query is required")
	}
	result, err := s.service.SearchBeats(ctx, input.Query, input.Limit, input.Category)
	if err != nil {
		return nil, retrieval.Result[catalog.BeatItem]{}, err
	}
	return nil, result, nil
}

func (s *Server) handleSearchLayouts(ctx context.Context, req *sdk.CallToolRequest, input SearchLayoutsInput) (*sdk.CallToolResult, retrieval.Result[catalog.LayoutItem], error) {
	if input.Query == "" {
		return nil, retrieval.Result[catalog.LayoutItem]{}, fmt.Errorf("query is required")
	}
	result, err := s.service.SearchLayouts(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, retrieval.Result[catalog.LayoutItem]{}, err
	}
	return nil, result, nil
}

func (s *Server) handlePromptContext(ctx context.Context, req *sdk.CallToolRequest, input PromptContextInput) (*sdk.CallToolResult, PromptContextOutput, error) {
	if input.Query == "" {
		return nil, PromptContextOutput{}, fmt.Errorf("query is required")
	}
	pc, err := s.service.PromptContext(ctx, input.Query)
	if err != nil {
		return nil, PromptContextOutput{}, err
	}
	return nil, PromptContextOutput{
		Rules:     pc.Rules,
		Beats:     pc.Beats,
		Layouts:   pc.Layouts,
		Examples:  pc.Examples,
		Formatted: prompt.Format(pc),
	}, nil
}

func (s *Server) handleAnalyzeScene(ctx context.Context, req *sdk.CallToolRequest, input AnalyzeSceneInput) (*sdk.CallToolResult, scene.Analysis, error) {
	if input.SceneID == "" {
		return nil, scene.Analysis{}, fmt.Errorf("scene_id is required")
	}
	analyze := s.service.Analyze
	if input.Register {
		analyze = s.service.AnalyzeAndRegister
	}
	analysis, err := analyze(input.SceneID, input.Source)
	if err != nil {
		return nil, scene.Analysis{}, err
	}
	return nil, analysis, nil
}

func (s *Server) handleSearchScenes(ctx context.Context, req *sdk.CallToolRequest, input SearchScenesInput) (*sdk.CallToolResult, ScenesOutput, error) {
	q := scene.Query{
		CardCount: input.CardCount,
		MinCards:  input.MinCards,
		MaxCards:  input.MaxCards,
		Layout:    input.Layout,
		Theme:     scene.Theme(input.Theme),
		Beats:     input.Beats,
		Tags:      input.Tags,
	}
	matches, err := s.service.SearchScenes(q, input.Limit)
	if err != nil {
		return nil, ScenesOutput{}, err
	}
	return nil, ScenesOutput{Matches: matches}, nil
}

func (s *Server) handleSimilarScenes(ctx context.Context, req *sdk.CallToolRequest, input SimilarScenesInput) (*sdk.CallToolResult, ScenesOutput, error) {
	if input.SceneID == "" {
		return nil, ScenesOutput{}, fmt.Errorf("scene_id is required")
	}
	matches, ok, err := s.service.SimilarScenes(input.SceneID, input.Limit)
	if err != nil {
		return nil, ScenesOutput{}, err
	}
	if !ok {
		return nil, ScenesOutput{}, fmt.Errorf("scene %q not found", input.SceneID)
	}
	return nil, ScenesOutput{Matches: matches}, nil
}
