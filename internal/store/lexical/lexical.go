// Package lexical is the in-memory keyword-matching candidate store. It
// pre-tokenizes documents at add time and scores the whole collection with
// Jaccard similarity per query: O(collection) per call, which is fine for the
// few hundred documents a corpus holds. Distance is reported as 1 − similarity.
package lexical

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/emailcraft/outreach/internal/domain/match"
	"github.com/emailcraft/outreach/internal/store"
)

type document struct {
	id       string
	text     string
	metadata map[string]string
	tokens   match.TokenSet
}

// Collection is an in-memory lexical candidate store.
type Collection struct {
	mu   sync.RWMutex
	docs []document
}

var _ store.Collection = (*Collection)(nil)

// New creates an empty lexical collection.
func New() *Collection {
	return &Collection{}
}

// Add indexes documents, tokenizing each once.
func (c *Collection) Add(_ context.Context, ids, documents []string, metadatas []map[string]string) error {
	if len(ids) != len(documents) || len(ids) != len(metadatas) {
		return fmt.Errorf("parallel slices differ in length: %d ids, %d documents, %d metadatas",
			len(ids), len(documents), len(metadatas))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, id := range ids {
		c.docs = append(c.docs, document{
			id:       id,
			text:     documents[i],
			metadata: metadatas[i],
			tokens:   match.Tokenize(documents[i]),
		})
	}
	return nil
}

// Query scores every document against the tokenized query, sorts by
// descending similarity (stable, so equal scores keep insertion order) and
// truncates to n.
func (c *Collection) Query(_ context.Context, queryText string, n int) (store.QueryResult, error) {
	queryTokens := match.Tokenize(queryText)

	c.mu.RLock()
	defer c.mu.RUnlock()

	type scored struct {
		doc        document
		similarity float64
	}
	results := make([]scored, len(c.docs))
	for i, doc := range c.docs {
		results[i] = scored{doc: doc, similarity: match.Jaccard(queryTokens, doc.tokens)}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].similarity > results[j].similarity
	})

	if n > 0 && len(results) > n {
		results = results[:n]
	}

	out := store.QueryResult{
		IDs:       make([]string, len(results)),
		Documents: make([]string, len(results)),
		Metadatas: make([]map[string]string, len(results)),
		Distances: make([]float64, len(results)),
	}
	for i, r := range results {
		out.IDs[i] = r.doc.id
		out.Documents[i] = r.doc.text
		out.Metadatas[i] = r.doc.metadata
		out.Distances[i] = 1.0 - r.similarity
	}
	return out, nil
}

// Count returns the number of indexed documents.
func (c *Collection) Count(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs), nil
}
