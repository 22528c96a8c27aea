package app

import (
	"context"

	"motionkb/internal/catalog"
	"motionkb/internal/prompt"
	"motionkb/internal/retrieval"
)

func (a *App) SearchKnowledge(ctx context.Context, query string, limit int, category string) (retrieval.Result[catalog.KnowledgeItem], error) {
	client, err := a.Retrieval()
	if err != nil {
		return retrieval.Result[catalog.KnowledgeItem]{}, err
	}
	return client.SearchKnowledge(ctx, query, limit, category)
}

func (a *App) SearchBeats(ctx context.Context, query string, limit int, category string) (retrieval.Result[catalog.BeatItem], error) {
	client, err := a.Retrieval()
	if err != nil {
		return retrieval.Result[catalog.BeatItem]{}, err
	}
	return client.SearchBeats(ctx, query, limit, category)
}

func (a *App) SearchLayouts(ctx context.Context, query string, limit int) (retrieval.Result[catalog.LayoutItem], error) {
	client, err := a.Retrieval()
	if err != nil {
		return retrieval.Result[catalog.LayoutItem]{}, err
	}
	return client.SearchLayouts(ctx, query, limit)
}

// PromptContext retrieves knowledge, beats and layouts for query and renders
// them as prompt text blocks.
func (a *App) PromptContext(ctx context.Context, query string) (prompt.Context, error) {
	client, err := a.Retrieval()
	if err != nil {
		return prompt.Context{}, err
	}
	relevant, err := client.RelevantContext(ctx, query)
	if err != nil {
		return prompt.Context{}, err
	}
	return prompt.BuildContext(relevant.Knowledge.Items, relevant.Beats.Items, relevant.Layouts.Items), nil
}
