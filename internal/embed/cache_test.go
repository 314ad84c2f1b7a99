package embed

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/domain"
)

// countingEmbedder tracks how many times the inner provider is hit.
type countingEmbedder struct {
	calls int
	err   error
}

func (c *countingEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	c.calls++
	if c.err != nil {
		return domain.EmbeddingResult{}, c.err
	}
	return domain.EmbeddingResult{
		Embedding:    []float32{0.25, -0.5, 1},
		PromptTokens: 3,
		TotalTokens:  3,
	}, nil
}

func TestCachedEmbedder_HitSkipsInner(t *testing.T) {
	inner := &countingEmbedder{}
	cached := NewCachedEmbedder(inner, NewMemoryKV(), nil, zap.NewNop())
	ctx := context.Background()

	first, err := cached.Embed(ctx, "go redis")
	if err != nil {
		t.Fatal(err)
	}
	if first.TotalTokens != 3 {
		t.Errorf("miss TotalTokens = %d, want 3", first.TotalTokens)
	}

	second, err := cached.Embed(ctx, "go redis")
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
	// Cache hits report zero token usage.
	if second.TotalTokens != 0 {
		t.Errorf("hit TotalTokens = %d, want 0", second.TotalTokens)
	}
	for i := range first.Embedding {
		if first.Embedding[i] != second.Embedding[i] {
			t.Fatal("cached vector differs from original")
		}
	}
}

func TestCachedEmbedder_DistinctTextsMiss(t *testing.T) {
	inner := &countingEmbedder{}
	cached := NewCachedEmbedder(inner, NewMemoryKV(), nil, zap.NewNop())
	ctx := context.Background()

	if _, err := cached.Embed(ctx, "go redis"); err != nil {
		t.Fatal(err)
	}
	if _, err := cached.Embed(ctx, "python pandas"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("inner called %d times, want 2", inner.calls)
	}
}

func TestCachedEmbedder_InnerErrorPropagates(t *testing.T) {
	wantErr := errors.New("provider down")
	cached := NewCachedEmbedder(&countingEmbedder{err: wantErr}, NewMemoryKV(), nil, zap.NewNop())

	_, err := cached.Embed(context.Background(), "go redis")
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
