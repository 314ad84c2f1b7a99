// Package redisstore is the managed vector-index candidate store: documents
// are embedded on write, stored as Redis hashes, and queried with FT.SEARCH
// KNN over an HNSW index. Distances are cosine distances as reported by the
// index.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/db"
	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/embed"
	"github.com/emailcraft/outreach/internal/store"
)

// KeyPrefix namespaces all retrieval keys in the shared Redis instance.
const KeyPrefix = "outreach:"

const (
	contentField = "__content"
	vectorField  = "vector"
)

// backend is the consumer interface over the db facade.
type backend interface {
	db.HashStore
	db.IndexManager
	db.Searcher
}

// Collection is a Redis-backed candidate store for one document collection.
type Collection struct {
	store    backend
	embedder domain.Embedder
	name     string
	logger   *zap.Logger
}

var _ store.Collection = (*Collection)(nil)

// New ensures the collection's FT index exists and returns the collection.
func New(ctx context.Context, s backend, embedder domain.Embedder, name string, dimensions int, logger *zap.Logger) (*Collection, error) {
	c := &Collection{store: s, embedder: embedder, name: name, logger: logger}

	exists, err := s.IndexExists(ctx, c.indexName())
	if err != nil {
		return nil, fmt.Errorf("probe index %s: %w", c.indexName(), err)
	}
	if !exists {
		def := &db.IndexDefinition{
			Name:        c.indexName(),
			Prefix:      c.docPrefix(),
			VectorField: vectorField,
			Dimensions:  dimensions,
			Distance:    db.DistanceCosine,
		}
		if err := s.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return nil, fmt.Errorf("create index %s: %w", c.indexName(), err)
		}
		logger.Info("created vector index",
			zap.String("index", c.indexName()),
			zap.Int("dimensions", dimensions))
	}

	return c, nil
}

// Add embeds and stores documents in one pipelined write.
func (c *Collection) Add(ctx context.Context, ids, documents []string, metadatas []map[string]string) error {
	if len(ids) != len(documents) || len(ids) != len(metadatas) {
		return fmt.Errorf("parallel slices differ in length: %d ids, %d documents, %d metadatas",
			len(ids), len(documents), len(metadatas))
	}

	items := make([]db.HashSetItem, 0, len(ids))
	for i, id := range ids {
		result, err := c.embedder.Embed(ctx, documents[i])
		if err != nil {
			return fmt.Errorf("embed document %s: %w", id, err)
		}

		fields := map[string]string{
			contentField: documents[i],
			vectorField:  string(embed.EncodeVector(result.Embedding)),
		}
		for k, v := range metadatas[i] {
			fields[k] = v
		}
		items = append(items, db.HashSetItem{Key: c.docPrefix() + id, Fields: fields})
	}

	if err := c.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("store documents: %w", err)
	}
	return nil
}

// Query embeds the query text and runs a KNN search.
func (c *Collection) Query(ctx context.Context, queryText string, n int) (store.QueryResult, error) {
	result, err := c.embedder.Embed(ctx, queryText)
	if err != nil {
		return store.QueryResult{}, fmt.Errorf("embed query: %w", err)
	}

	sr, err := c.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName: c.indexName(),
		Vector:    result.Embedding,
		K:         n,
	})
	if err != nil {
		return store.QueryResult{}, fmt.Errorf("knn search %s: %w", c.name, err)
	}

	out := store.QueryResult{}
	for _, entry := range sr.Entries {
		metadata := make(map[string]string, len(entry.Fields))
		var document string
		for k, v := range entry.Fields {
			switch k {
			case contentField:
				document = v
			case vectorField:
				// raw blob, not metadata
			default:
				metadata[k] = v
			}
		}

		out.IDs = append(out.IDs, strings.TrimPrefix(entry.Key, c.docPrefix()))
		out.Documents = append(out.Documents, document)
		out.Metadatas = append(out.Metadatas, metadata)
		out.Distances = append(out.Distances, entry.Distance)
	}
	return out, nil
}

// Count returns the number of indexed documents.
func (c *Collection) Count(ctx context.Context) (int, error) {
	n, err := c.store.SearchCount(ctx, c.indexName())
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return n, nil
}

func (c *Collection) indexName() string { return KeyPrefix + c.name + ":idx" }
func (c *Collection) docPrefix() string { return KeyPrefix + c.name + ":" }
