package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/emailcraft/outreach/internal/db"
)

// distanceField is the alias the KNN clause assigns to the per-hit cosine
// distance; it is lifted out of the returned fields into SearchEntry.Distance.
const distanceField = "__dist"

// SearchKNN runs FT.SEARCH with a KNN clause over the index's vector field.
func (s *Store) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	switch {
	case q.IndexName == "":
		return nil, errors.New("redis: index name is required")
	case len(q.Vector) == 0:
		return nil, errors.New("redis: query vector is required")
	case q.K <= 0:
		return nil, errors.New("redis: k must be positive")
	}

	args := []string{
		q.IndexName,
		fmt.Sprintf("*=>[KNN %d @vector $vec AS %s]", q.K, distanceField),
		"SORTBY", distanceField,
	}
	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}
	args = append(args, "PARAMS", "2", "vec", rueidis.VectorString32(q.Vector), "DIALECT", "2")

	total, docs, err := s.client.Do(ctx, s.client.B().Arbitrary("FT.SEARCH").Args(args...).Build()).AsFtSearch()
	if err != nil {
		return nil, &db.Error{Op: "FT.SEARCH", Key: q.IndexName, Err: err}
	}

	entries := make([]db.SearchEntry, 0, len(docs))
	for _, doc := range docs {
		entry := db.SearchEntry{Key: doc.Key, Fields: doc.Doc}
		if raw, ok := doc.Doc[distanceField]; ok {
			if d, perr := strconv.ParseFloat(raw, 64); perr == nil {
				entry.Distance = d
			}
			delete(doc.Doc, distanceField)
		}
		entries = append(entries, entry)
	}
	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

// SearchCount returns the index's document count without fetching documents.
func (s *Store) SearchCount(ctx context.Context, index string) (int, error) {
	cmd := s.client.B().Arbitrary("FT.SEARCH").Args(index, "*", "LIMIT", "0", "0").Build()
	total, _, err := s.client.Do(ctx, cmd).AsFtSearch()
	if err != nil {
		return 0, &db.Error{Op: "FT.SEARCH", Key: index, Err: err}
	}
	return int(total), nil
}
