package retrieval

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"motionkb/internal/catalog"
	"motionkb/internal/embedding"
	"motionkb/internal/logging"
	"motionkb/internal/metrics"
	"motionkb/internal/store"
	"motionkb/internal/store/postgres"
)

const (
	DefaultKnowledgeLimit = 5
	DefaultBeatLimit      = 5
	DefaultLayoutLimit    = 3
)

type Result[T any] struct {
	Items      []T    `json:"items"`
	Query      string `json:"query"`
	TotalFound int    `json:"total_found"`
}

// Relevant bundles the three searches issued for one request.
type Relevant struct {
	Knowledge Result[catalog.KnowledgeItem] `json:"knowledge"`
	Beats     Result[catalog.BeatItem]      `json:"beats"`
	Layouts   Result[catalog.LayoutItem]    `json:"layouts"`
}

type Options struct {
	DSN       string
	Disabled  bool
	Embedding embedding.Config
	Logger    *zap.Logger
	Metrics   *metrics.Collector

	// OpenStore and NewEmbedder default to the postgres store and
	// embedding.New.
	OpenStore   func(ctx context.Context, dsn string) (store.Store, error)
	NewEmbedder func(cfg embedding.Config) (embedding.Embedder, error)
}

// Client searches the catalogs through a vector store when one is reachable
// and falls back to fixed offline results otherwise. Connect never fails.
type Client struct {
	opts   Options
	logger *zap.Logger

	mu        sync.RWMutex
	backend   Backend
	store     store.Store
	connected bool
}

func NewClient(opts Options) *Client {
	if opts.OpenStore == nil {
		opts.OpenStore = func(ctx context.Context, dsn string) (store.Store, error) {
			return postgres.New(ctx, dsn)
		}
	}
	if opts.NewEmbedder == nil {
		opts.NewEmbedder = embedding.New
	}
	return &Client{opts: opts, logger: logging.OrNop(opts.Logger)}
}

func (c *Client) Connect(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		return
	}
	c.connected = true
	c.backend = offlineBackend{}

	if c.opts.Disabled {
		c.logger.Info("vector store disabled, serving offline results")
		return
	}

	embedder, err := c.opts.NewEmbedder(c.opts.Embedding)
	if err != nil {
		c.degrade("embedding provider unavailable", err)
		return
	}

	s, err := c.opts.OpenStore(ctx, c.opts.DSN)
	if err != nil {
		c.degrade("vector store unreachable", err)
		return
	}

	c.store = s
	c.backend = &onlineBackend{store: s, embedder: embedder, metrics: c.opts.Metrics}
	c.logger.Info("connected to vector store", zap.String("provider", c.opts.Embedding.Provider))
}

func (c *Client) degrade(reason string, err error) {
	c.opts.Metrics.Fallback()
	c.logger.Warn(reason+", falling back to offline results", zap.Error(err))
}

func (c *Client) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	c.connected = false
	c.backend = nil

	if c.store == nil {
		return nil
	}
	s := c.store
	c.store = nil
	if err := s.Close(ctx); err != nil {
		return fmt.Errorf("closing vector store: %w", err)
	}
	return nil
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *Client) IsUsingDatabase() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store != nil
}

// Store returns the live vector store, or nil when offline.
func (c *Client) Store() store.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

// current returns the selected backend. Searches issued before Connect
// are answered offline.
func (c *Client) current() Backend {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.backend == nil {
		return offlineBackend{}
	}
	return c.backend
}

func (c *Client) SearchKnowledge(ctx context.Context, query string, limit int, category string) (Result[catalog.KnowledgeItem], error) {
	if limit <= 0 {
		limit = DefaultKnowledgeLimit
	}
	backend := c.current()
	start := time.Now()
	items, err := backend.Knowledge(ctx, query, limit, category)
	c.opts.Metrics.ObserveSearch("knowledge", backend.Mode(), time.Since(start))
	if err != nil {
		return Result[catalog.KnowledgeItem]{}, fmt.Errorf("searching knowledge: %w", err)
	}
	return Result[catalog.KnowledgeItem]{Items: items, Query: query, TotalFound: len(items)}, nil
}

func (c *Client) SearchBeats(ctx context.Context, query string, limit int, category string) (Result[catalog.BeatItem], error) {
	if limit <= 0 {
		limit = DefaultBeatLimit
	}
	backend := c.current()
	start := time.Now()
	items, err := backend.Beats(ctx, query, limit, category)
	c.opts.Metrics.ObserveSearch("beats", backend.Mode(), time.Since(start))
	if err != nil {
		return Result[catalog.BeatItem]{}, fmt.Errorf("searching beats: %w", err)
	}
	return Result[catalog.BeatItem]{Items: items, Query: query, TotalFound: len(items)}, nil
}

func (c *Client) SearchLayouts(ctx context.Context, query string, limit int) (Result[catalog.LayoutItem], error) {
	if limit <= 0 {
		limit = DefaultLayoutLimit
	}
	backend := c.current()
	start := time.Now()
	items, err := backend.Layouts(ctx, query, limit)
	c.opts.Metrics.ObserveSearch("layouts", backend.Mode(), time.Since(start))
	if err != nil {
		return Result[catalog.LayoutItem]{}, fmt.Errorf("searching layouts: %w", err)
	}
	return Result[catalog.LayoutItem]{Items: items, Query: query, TotalFound: len(items)}, nil
}

// RelevantContext runs the knowledge, beat and layout searches concurrently
// with their default limits. Any failure fails the whole call.
func (c *Client) RelevantContext(ctx context.Context, query string) (Relevant, error) {
	var out Relevant
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Knowledge, err = c.SearchKnowledge(gctx, query, DefaultKnowledgeLimit, "")
		return err
	})
	g.Go(func() error {
		var err error
		out.Beats, err = c.SearchBeats(gctx, query, DefaultBeatLimit, "")
		return err
	})
	g.Go(func() error {
		var err error
		out.Layouts, err = c.SearchLayouts(gctx, query, DefaultLayoutLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return Relevant{}, err
	}
	return out, nil
}
