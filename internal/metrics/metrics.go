package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	ModeOnline  = "online"
	ModeOffline = "offline"

	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector records retrieval activity. A nil *Collector is valid and records nothing.
type Collector struct {
	registry          *prometheus.Registry
	searches          *prometheus.CounterVec
	fallbacks         prometheus.Counter
	embeddingRequests *prometheus.CounterVec
	searchDuration    *prometheus.HistogramVec
}

func New() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Collector{
		registry: registry,
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "motionkb_searches_total",
			Help: "Catalog searches, partitioned by catalog kind and retrieval mode.",
		}, []string{"kind", "mode"}),
		fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "motionkb_offline_fallbacks_total",
			Help: "Times the retrieval client degraded to offline fixtures on connect.",
		}),
		embeddingRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "motionkb_embedding_requests_total",
			Help: "Embedding provider calls, partitioned by outcome.",
		}, []string{"outcome"}),
		searchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "motionkb_search_duration_seconds",
			Help:    "Latency of catalog searches.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind", "mode"}),
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) ObserveSearch(kind, mode string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.searches.WithLabelValues(kind, mode).Inc()
	c.searchDuration.WithLabelValues(kind, mode).Observe(elapsed.Seconds())
}

func (c *Collector) Fallback() {
	if c == nil {
		return
	}
	c.fallbacks.Inc()
}

func (c *Collector) EmbeddingRequest(err error) {
	if c == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	c.embeddingRequests.WithLabelValues(outcome).Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listener started", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
