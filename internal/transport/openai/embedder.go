// Package openai is the embedding provider transport for OpenAI-compatible
// embeddings APIs.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/metrics"
)

const providerLabel = "openai"

// Config holds the embedding provider settings.
type Config struct {
	APIKey     string
	BaseURL    string // empty uses the default OpenAI endpoint
	Model      string
	Dimensions int
}

// Embedder calls the embeddings endpoint for one text at a time.
type Embedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

var _ domain.Embedder = (*Embedder)(nil)

// NewEmbedder creates the provider transport.
func NewEmbedder(cfg Config) *Embedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Embedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
	}
}

// Embed vectorizes the text and reports token usage. Any provider failure
// is wrapped with domain.ErrEmbeddingProviderError.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	start := time.Now()
	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		e.countFailure("api_error")
		return domain.EmbeddingResult{}, e.wrapProviderError(err)
	}
	if len(resp.Data) == 0 {
		e.countFailure("empty_response")
		return domain.EmbeddingResult{}, fmt.Errorf("empty embedding response: %w", domain.ErrEmbeddingProviderError)
	}

	model := string(e.model)
	metrics.EmbeddingRequestsTotal.WithLabelValues(providerLabel, model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(providerLabel, model).Observe(time.Since(start).Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues(providerLabel, model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.EmbeddingTokensTotal.WithLabelValues(providerLabel, model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	return domain.EmbeddingResult{
		Embedding:    resp.Data[0].Embedding,
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels, which is free.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func (e *Embedder) countFailure(class string) {
	model := string(e.model)
	metrics.EmbeddingRequestsTotal.WithLabelValues(providerLabel, model, "error").Inc()
	metrics.EmbeddingErrorsTotal.WithLabelValues(providerLabel, model, class).Inc()
}

// wrapProviderError keeps the upstream status and message where the client
// library exposes them, and always chains domain.ErrEmbeddingProviderError.
func (e *Embedder) wrapProviderError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, domain.ErrEmbeddingProviderError)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("embedding API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), domain.ErrEmbeddingProviderError)
	}

	return fmt.Errorf("embedding request: %v: %w", err, domain.ErrEmbeddingProviderError)
}
