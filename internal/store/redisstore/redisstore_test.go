package redisstore

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/db"
	"github.com/emailcraft/outreach/internal/domain"
)

// mockBackend implements the consumer interface for tests.
type mockBackend struct {
	hsetMultiFn   func(ctx context.Context, items []db.HashSetItem) error
	searchKNNFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index string) (int, error)
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
}

func (m *mockBackend) HSet(context.Context, string, map[string]string) error { return nil }

func (m *mockBackend) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockBackend) HGetAll(context.Context, string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (m *mockBackend) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockBackend) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return true, nil
}

func (m *mockBackend) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockBackend) SearchCount(ctx context.Context, index string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index)
	}
	return 0, nil
}

// staticEmbedder returns a fixed vector.
type staticEmbedder struct{}

func (staticEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: []float32{1, 0, 0}}, nil
}

func TestNew_CreatesMissingIndex(t *testing.T) {
	var created *db.IndexDefinition
	m := &mockBackend{
		indexExistsFn: func(ctx context.Context, name string) (bool, error) { return false, nil },
		createIndexFn: func(ctx context.Context, def *db.IndexDefinition) error {
			created = def
			return nil
		},
	}

	_, err := New(context.Background(), m, staticEmbedder{}, "templates", 3, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if created == nil {
		t.Fatal("index was not created")
	}
	if created.Name != "outreach:templates:idx" {
		t.Errorf("index name = %q", created.Name)
	}
	if created.Prefix != "outreach:templates:" {
		t.Errorf("prefix = %q", created.Prefix)
	}
	if created.Distance != db.DistanceCosine || created.Dimensions != 3 {
		t.Errorf("unexpected definition: %+v", created)
	}
}

func TestNew_ToleratesIndexRace(t *testing.T) {
	m := &mockBackend{
		indexExistsFn: func(ctx context.Context, name string) (bool, error) { return false, nil },
		createIndexFn: func(ctx context.Context, def *db.IndexDefinition) error {
			return db.ErrIndexExists
		},
	}

	if _, err := New(context.Background(), m, staticEmbedder{}, "templates", 3, zap.NewNop()); err != nil {
		t.Fatalf("New must tolerate a concurrent creator, got %v", err)
	}
}

func TestAdd_WritesContentVectorAndMetadata(t *testing.T) {
	var written []db.HashSetItem
	m := &mockBackend{
		hsetMultiFn: func(ctx context.Context, items []db.HashSetItem) error {
			written = items
			return nil
		},
	}
	coll, err := New(context.Background(), m, staticEmbedder{}, "templates", 3, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	err = coll.Add(context.Background(),
		[]string{"t1"}, []string{"go redis"}, []map[string]string{{"industry": "tech"}})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if len(written) != 1 || written[0].Key != "outreach:templates:t1" {
		t.Fatalf("written = %+v", written)
	}
	fields := written[0].Fields
	if fields["__content"] != "go redis" {
		t.Errorf("content field = %q", fields["__content"])
	}
	if fields["industry"] != "tech" {
		t.Errorf("metadata field lost: %v", fields)
	}
	if len(fields["vector"]) != 12 { // 3 float32s
		t.Errorf("vector blob length = %d, want 12", len(fields["vector"]))
	}
}

func TestQuery_StripsPrefixAndSeparatesFields(t *testing.T) {
	m := &mockBackend{
		searchKNNFn: func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
			if q.IndexName != "outreach:templates:idx" {
				t.Errorf("index = %q", q.IndexName)
			}
			if q.K != 6 {
				t.Errorf("K = %d, want 6", q.K)
			}
			return &db.SearchResult{
				Total: 1,
				Entries: []db.SearchEntry{{
					Key:      "outreach:templates:t1",
					Distance: 0.25,
					Fields: map[string]string{
						"__content": "go redis",
						"vector":    "rawblob",
						"industry":  "tech",
					},
				}},
			}, nil
		},
	}
	coll, err := New(context.Background(), m, staticEmbedder{}, "templates", 3, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	res, err := coll.Query(context.Background(), "go redis", 6)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Len() != 1 {
		t.Fatalf("Len = %d, want 1", res.Len())
	}
	if res.IDs[0] != "t1" {
		t.Errorf("ID = %q, want t1", res.IDs[0])
	}
	if res.Documents[0] != "go redis" {
		t.Errorf("Document = %q", res.Documents[0])
	}
	if res.Distances[0] != 0.25 {
		t.Errorf("Distance = %g", res.Distances[0])
	}
	if _, ok := res.Metadatas[0]["vector"]; ok {
		t.Error("raw vector blob leaked into metadata")
	}
	if res.Metadatas[0]["industry"] != "tech" {
		t.Errorf("metadata = %v", res.Metadatas[0])
	}
}

func TestCount(t *testing.T) {
	m := &mockBackend{
		searchCountFn: func(ctx context.Context, index string) (int, error) { return 7, nil },
	}
	coll, err := New(context.Background(), m, staticEmbedder{}, "portfolio", 3, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	n, err := coll.Count(context.Background())
	if err != nil || n != 7 {
		t.Errorf("Count = %d, %v; want 7", n, err)
	}
}
