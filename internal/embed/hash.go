// Package embed provides embedding helpers: the deterministic hash
// pseudo-embedder, the caching decorator, and vector blob codecs.
package embed

import (
	"context"
	"crypto/md5" //nolint:gosec // fingerprint only, not a security boundary
	"fmt"
	"math"
	"math/big"
	"strings"

	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/domain"
)

// HashEmbedder maps text to a fixed-dimension vector by hashing
// "{text}_{dim}" per dimension and L2-normalizing the result.
//
// This is a NON-SEMANTIC placeholder: identical text yields an identical
// vector, different text yields a near-orthogonal one. It keeps the embedding
// interface satisfiable without a real model and provides a stable
// fingerprint, never a quality baseline. Prefer the lexical backend or a real
// provider; enabling this requires an explicit config opt-in.
type HashEmbedder struct {
	dimensions int
}

var _ domain.Embedder = (*HashEmbedder)(nil)

// NewHashEmbedder creates a hash pseudo-embedder and logs a warning so the
// degraded mode is visible in operation.
func NewHashEmbedder(dimensions int, logger *zap.Logger) (*HashEmbedder, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %d", dimensions)
	}
	logger.Warn("using hash pseudo-embeddings: scores carry no semantic signal",
		zap.Int("dimensions", dimensions))
	return &HashEmbedder{dimensions: dimensions}, nil
}

// Embed returns the deterministic fingerprint vector for text.
func (e *HashEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	text = strings.ToLower(strings.TrimSpace(text))

	vec := make([]float32, e.dimensions)
	var norm float64
	for i := range vec {
		sum := md5.Sum([]byte(fmt.Sprintf("%s_%d", text, i))) //nolint:gosec
		h := new(big.Int).SetBytes(sum[:])
		v := float64(new(big.Int).Mod(h, big.NewInt(10000)).Int64())/5000.0 - 1.0
		vec[i] = float32(v)
		norm += v * v
	}

	if norm > 0 {
		inv := float32(1.0 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}

	return domain.EmbeddingResult{Embedding: vec}, nil
}
