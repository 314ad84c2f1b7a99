package templates

import (
	"context"
	"errors"

	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/store"
)

// mockRepo serves a fixed corpus.
type mockRepo struct {
	corpus  []domain.EmailTemplate
	loadErr error
}

func (m *mockRepo) Load() ([]domain.EmailTemplate, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.corpus, nil
}

// failingCollection errors on every query.
type failingCollection struct{}

func (failingCollection) Add(context.Context, []string, []string, []map[string]string) error {
	return nil
}

func (failingCollection) Query(context.Context, string, int) (store.QueryResult, error) {
	return store.QueryResult{}, errors.New("backend unavailable")
}

func (failingCollection) Count(context.Context) (int, error) { return 0, nil }
