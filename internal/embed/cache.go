package embed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/domain"
)

const cacheKeyPrefix = "outreach:emb_cache:"

// KV is the consumer interface for the cache's backing store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CachedEmbedder memoizes embeddings in a key-value store. The cache is
// unbounded for the process lifetime; corpora are small and embeddings are
// immutable, so growth is bounded by distinct query texts.
type CachedEmbedder struct {
	inner      domain.Embedder
	kv         KV
	cacheTotal *prometheus.CounterVec // label "result": hit|miss
	logger     *zap.Logger
}

var _ domain.Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder creates a caching decorator around inner.
func NewCachedEmbedder(inner domain.Embedder, kv KV, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, kv: kv, cacheTotal: cacheTotal, logger: logger}
}

// Embed returns a cached vector when present; hits report zero tokens.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := cacheKey(text)

	if blob, err := c.kv.Get(ctx, key); err == nil && len(blob) > 0 {
		c.count("hit")
		return domain.EmbeddingResult{Embedding: DecodeVector(blob)}, nil
	}

	result, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	c.count("miss")

	if err := c.kv.Set(ctx, key, EncodeVector(result.Embedding)); err != nil {
		// Cache write failures only cost a future recomputation.
		c.logger.Warn("embedding cache write failed", zap.Error(err))
	}
	return result, nil
}

func (c *CachedEmbedder) count(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// MemoryKV is a process-local KV for deployments without Redis.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string][]byte)}
}

// Get returns the stored value or nil when absent.
func (s *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[key], nil
}

// Set stores a value.
func (s *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}
