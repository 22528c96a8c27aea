package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"motionkb/internal/catalog"
	"motionkb/internal/config"
	"motionkb/internal/discovery"
	"motionkb/internal/embedding"
	"motionkb/internal/logging"
	"motionkb/internal/metrics"
	"motionkb/internal/parser"
	"motionkb/internal/retrieval"
	"motionkb/internal/scene"
	"motionkb/internal/store"
)

var ErrNotInitialized = errors.New("motionkb is not initialized; call Init first")

type Options struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Collector

	// OpenStore and NewEmbedder override the retrieval defaults.
	OpenStore   func(ctx context.Context, dsn string) (store.Store, error)
	NewEmbedder func(cfg embedding.Config) (embedding.Embedder, error)
}

// App owns the process-scoped state: catalogs, the scene index and the
// retrieval client. All access goes through its methods.
type App struct {
	opts   Options
	logger *zap.Logger

	mu          sync.RWMutex
	initialized bool
	retrieval   *retrieval.Client
	knowledge   *catalog.KnowledgeStore
	beats       *catalog.BeatStore
	layouts     []catalog.LayoutItem
	analyzer    *scene.Analyzer
	scenes      *scene.Index
	report      *discovery.Report
}

func New(opts Options) *App {
	if opts.NewEmbedder == nil {
		opts.NewEmbedder = embedding.New
	}
	return &App{opts: opts, logger: logging.OrNop(opts.Logger)}
}

// Init seeds the catalogs, loads knowledge documents, discovers scenes and
// connects the retrieval client. Calling it again is a no-op.
func (a *App) Init(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return nil
	}
	cfg := a.opts.Config
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	knowledge := catalog.NewKnowledgeStore()
	beats := catalog.NewBeatStore()
	if err := catalog.SeedDefaults(knowledge, beats); err != nil {
		return fmt.Errorf("seeding catalogs: %w", err)
	}
	layouts, err := catalog.DefaultLayouts()
	if err != nil {
		return fmt.Errorf("loading layouts: %w", err)
	}

	for _, path := range cfg.Knowledge.Paths {
		docs, err := parser.ParseDir(path)
		if err != nil {
			return fmt.Errorf("loading knowledge documents: %w", err)
		}
		for _, doc := range docs {
			if _, err := knowledge.Add(doc.KnowledgeInput()); err != nil {
				return fmt.Errorf("loading %s: %w", doc.SourceFile, err)
			}
		}
		a.logger.Debug("loaded knowledge documents", zap.String("path", path), zap.Int("documents", len(docs)))
	}

	analyzer, err := scene.NewAnalyzerFromFile(cfg.Scenes.Rules)
	if err != nil {
		return fmt.Errorf("building analyzer: %w", err)
	}

	index := scene.NewIndex()
	report, err := discovery.Run(ctx, analyzer, index, discovery.Options{
		Paths:   cfg.Scenes.Paths,
		Exclude: cfg.Scenes.Exclude,
	})
	if err != nil {
		return fmt.Errorf("discovering scenes: %w", err)
	}
	a.logger.Info("scene discovery complete",
		zap.Int("scenes", report.ScenesFound),
		zap.Int("warnings", report.Warnings()),
		zap.Int("errors", len(report.Errors)),
	)

	client := retrieval.NewClient(retrieval.Options{
		DSN:         cfg.Database.DSN(),
		Disabled:    cfg.Database.Disabled,
		Embedding:   embeddingConfig(cfg.Embedding),
		Logger:      a.logger,
		Metrics:     a.opts.Metrics,
		OpenStore:   a.opts.OpenStore,
		NewEmbedder: a.opts.NewEmbedder,
	})
	client.Connect(ctx)

	a.retrieval = client
	a.knowledge = knowledge
	a.beats = beats
	a.layouts = layouts
	a.analyzer = analyzer
	a.scenes = index
	a.report = report
	a.initialized = true

	a.logger.Info("motionkb initialized",
		zap.String("project", cfg.Project),
		zap.Int("knowledge", knowledge.Len()),
		zap.Int("beats", beats.Len()),
		zap.Bool("database", client.IsUsingDatabase()),
	)
	return nil
}

// Shutdown disconnects the retrieval client and drops all state. It is safe
// to call on an uninitialized App.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return nil
	}
	client := a.retrieval
	a.initialized = false
	a.retrieval = nil
	a.knowledge = nil
	a.beats = nil
	a.layouts = nil
	a.analyzer = nil
	a.scenes = nil
	a.report = nil
	return client.Disconnect(ctx)
}

func (a *App) Initialized() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.initialized
}

func (a *App) Retrieval() (*retrieval.Client, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	return a.retrieval, nil
}

// Report returns the scene discovery report produced by Init.
func (a *App) Report() (*discovery.Report, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	return a.report, nil
}

func embeddingConfig(cfg config.EmbeddingConfig) embedding.Config {
	return embedding.Config{
		Provider:  cfg.Provider,
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		BaseURL:   cfg.BaseURL,
		Dimension: cfg.Dimension,
		Timeout:   cfg.Timeout,
	}
}
