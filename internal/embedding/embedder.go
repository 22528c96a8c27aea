package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderMock   = "mock"
	ProviderOpenAI = "openai"

	DefaultModel     = "text-embedding-3-small"
	DefaultBaseURL   = "https://api.openai.com/v1"
	DefaultDimension = 1536
	defaultTimeout   = 30 * time.Second
)

var (
	// ErrUnexpectedShape reports a provider response that did not carry
	// exactly one embedding of the expected dimension.
	ErrUnexpectedShape = errors.New("unexpected embedding response shape")
	ErrMissingAPIKey   = errors.New("embedding provider requires an API key")
	ErrUnknownProvider = errors.New("unknown embedding provider")
)

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Config struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	Dimension int
	Timeout   time.Duration
}

// New builds the embedder named by cfg.Provider. An empty provider means mock.
func New(cfg Config) (Embedder, error) {
	if cfg.Dimension <= 0 {
		cfg.Dimension = DefaultDimension
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderMock:
		return NewMock(cfg.Dimension), nil
	case ProviderOpenAI:
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, ErrMissingAPIKey
		}
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
