package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"motionkb/internal/catalog"
	"motionkb/internal/prompt"
	"motionkb/internal/retrieval"
	"motionkb/internal/scene"
)

// Service is the retrieval and scene surface exposed as tools. *app.App
// implements it.
type Service interface {
	SearchKnowledge(ctx context.Context, query string, limit int, category string) (retrieval.Result[catalog.KnowledgeItem], error)
	SearchBeats(ctx context.Context, query string, limit int, category string) (retrieval.Result[catalog.BeatItem], error)
	SearchLayouts(ctx context.Context, query string, limit int) (retrieval.Result[catalog.LayoutItem], error)
	PromptContext(ctx context.Context, query string) (prompt.Context, error)
	Analyze(sceneID, source string) (scene.Analysis, error)
	AnalyzeAndRegister(sceneID, source string) (scene.Analysis, error)
	SearchScenes(q scene.Query, limit int) ([]scene.Match, error)
	SimilarScenes(id string, limit int) ([]scene.Match, bool, error)
}

type Server struct {
	service Service
	mcp     *sdk.Server
}

func NewServer(service Service, version string) *Server {
	s := &Server{
		service: service,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "motionkb",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
