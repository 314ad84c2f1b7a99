// Package store defines the candidate store contract shared by the lexical,
// SQLite, and Redis backends. Which backend serves a collection is decided by
// configuration at the composition root, never inside the core.
package store

import "context"

// QueryResult holds one query's hits as parallel slices, ordered by ascending
// distance. Distances are backend-native dissimilarity values and are not
// guaranteed to stay below 1; callers convert via rank.Similarity.
type QueryResult struct {
	IDs       []string
	Documents []string
	Metadatas []map[string]string
	Distances []float64
}

// Len returns the number of hits.
func (r QueryResult) Len() int { return len(r.IDs) }

// Collection is the pluggable candidate store:
//
//   - Add indexes new documents. IDs must be unique within the collection;
//     re-adding an existing id is undefined behavior, callers derive ids from
//     stable row indices or the live count.
//   - Query returns the n nearest candidates to the query text.
//   - Count is used at startup: zero triggers a one-time corpus bulk load.
type Collection interface {
	Add(ctx context.Context, ids, documents []string, metadatas []map[string]string) error
	Query(ctx context.Context, queryText string, n int) (QueryResult, error)
	Count(ctx context.Context) (int, error)
}
