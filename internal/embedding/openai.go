package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient calls an OpenAI compatible /embeddings endpoint.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	dimension int
	timeout   time.Duration
}

var _ Embedder = (*OpenAIClient)(nil)

func NewOpenAI(cfg Config) *OpenAIClient {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIClient{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		dimension: cfg.Dimension,
		timeout:   timeout,
	}
}

// Embed requests a single embedding. A response without exactly one vector,
// or with a vector of the wrong dimension, is an ErrUnexpectedShape failure.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return nil, fmt.Errorf("requesting embedding: %w", err)
	}
	if len(resp.Data) != 1 {
		return nil, fmt.Errorf("%w: got %d embeddings, want 1", ErrUnexpectedShape, len(resp.Data))
	}

	vector := resp.Data[0].Embedding
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", ErrUnexpectedShape)
	}
	if c.dimension > 0 && len(vector) != c.dimension {
		return nil, fmt.Errorf("%w: got dimension %d, want %d", ErrUnexpectedShape, len(vector), c.dimension)
	}
	return vector, nil
}
