// Package sqlitestore is the local persistent vector candidate store:
// embeddings are computed on write and persisted in SQLite, and queries run a
// brute-force cosine scan over the collection. Collections hold at most a few
// hundred rows, so the scan is cheaper than maintaining a real index.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/embed"
	"github.com/emailcraft/outreach/internal/store"
)

// DB wraps the shared SQLite handle so multiple collections reuse one file.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the vector database at path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		content    TEXT NOT NULL,
		metadata   TEXT NOT NULL,
		embedding  BLOB NOT NULL,
		PRIMARY KEY (collection, id)
	)`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close releases the database handle.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Collection is a SQLite-backed candidate store for one document collection.
type Collection struct {
	db       *DB
	embedder domain.Embedder
	name     string
}

var _ store.Collection = (*Collection)(nil)

// NewCollection binds a collection name to the shared database.
func NewCollection(db *DB, embedder domain.Embedder, name string) *Collection {
	return &Collection{db: db, embedder: embedder, name: name}
}

// Add embeds and persists documents.
func (c *Collection) Add(ctx context.Context, ids, documents []string, metadatas []map[string]string) error {
	if len(ids) != len(documents) || len(ids) != len(metadatas) {
		return fmt.Errorf("parallel slices differ in length: %d ids, %d documents, %d metadatas",
			len(ids), len(documents), len(metadatas))
	}

	for i, id := range ids {
		result, err := c.embedder.Embed(ctx, documents[i])
		if err != nil {
			return fmt.Errorf("embed document %s: %w", id, err)
		}

		meta, err := json.Marshal(metadatas[i])
		if err != nil {
			return fmt.Errorf("marshal metadata %s: %w", id, err)
		}

		if _, err := c.db.conn.ExecContext(ctx,
			`INSERT INTO documents (collection, id, content, metadata, embedding) VALUES (?, ?, ?, ?, ?)`,
			c.name, id, documents[i], string(meta), embed.EncodeVector(result.Embedding),
		); err != nil {
			return fmt.Errorf("insert document %s: %w", id, err)
		}
	}
	return nil
}

// Query embeds the query text, scans the collection, and returns the n
// nearest documents by cosine distance.
func (c *Collection) Query(ctx context.Context, queryText string, n int) (store.QueryResult, error) {
	result, err := c.embedder.Embed(ctx, queryText)
	if err != nil {
		return store.QueryResult{}, fmt.Errorf("embed query: %w", err)
	}
	queryVec := result.Embedding

	rows, err := c.db.conn.QueryContext(ctx,
		`SELECT id, content, metadata, embedding FROM documents WHERE collection = ?`, c.name)
	if err != nil {
		return store.QueryResult{}, fmt.Errorf("scan collection %s: %w", c.name, err)
	}
	defer rows.Close()

	type hit struct {
		id       string
		content  string
		metadata map[string]string
		distance float64
	}
	var hits []hit

	for rows.Next() {
		var id, content, metaJSON string
		var blob []byte
		if err := rows.Scan(&id, &content, &metaJSON, &blob); err != nil {
			return store.QueryResult{}, fmt.Errorf("scan row: %w", err)
		}

		metadata := map[string]string{}
		if err := json.Unmarshal([]byte(metaJSON), &metadata); err != nil {
			// A corrupt metadata blob shouldn't sink the whole query.
			metadata = map[string]string{}
		}

		hits = append(hits, hit{
			id:       id,
			content:  content,
			metadata: metadata,
			distance: 1.0 - cosineSimilarity(queryVec, embed.DecodeVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return store.QueryResult{}, fmt.Errorf("scan collection %s: %w", c.name, err)
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })
	if n > 0 && len(hits) > n {
		hits = hits[:n]
	}

	out := store.QueryResult{
		IDs:       make([]string, len(hits)),
		Documents: make([]string, len(hits)),
		Metadatas: make([]map[string]string, len(hits)),
		Distances: make([]float64, len(hits)),
	}
	for i, h := range hits {
		out.IDs[i] = h.id
		out.Documents[i] = h.content
		out.Metadatas[i] = h.metadata
		out.Distances[i] = h.distance
	}
	return out, nil
}

// Count returns the number of persisted documents in the collection.
func (c *Collection) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = ?`, c.name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return n, nil
}

// cosineSimilarity returns the cosine of the angle between a and b, or 0 for
// mismatched or zero vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
