package domain

import "context"

// EmbeddingResult carries a vector plus the token usage that produced it.
// Decorators that answer from cache report zero tokens.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes one text. Implementations are the provider transport,
// the deterministic hash fallback, and the caching decorator around either.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker is implemented by embedders that can probe their provider.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
