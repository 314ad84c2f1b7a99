package templates

import (
	"context"

	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/store"
)

// Collection is the candidate store contract consumed by this service.
type Collection interface {
	Add(ctx context.Context, ids, documents []string, metadatas []map[string]string) error
	Query(ctx context.Context, queryText string, n int) (store.QueryResult, error)
	Count(ctx context.Context) (int, error)
}

// Repository loads the template corpus from disk.
type Repository interface {
	Load() ([]domain.EmailTemplate, error)
}
