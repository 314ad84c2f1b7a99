package portfolio

import (
	"context"
	"errors"

	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/store"
)

// mockRepo keeps the corpus in memory.
type mockRepo struct {
	entries  []domain.PortfolioEntry
	appended []domain.PortfolioEntry
	loadErr  error
}

func (m *mockRepo) Load() ([]domain.PortfolioEntry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.entries, nil
}

func (m *mockRepo) Append(entry domain.PortfolioEntry) error {
	m.appended = append(m.appended, entry)
	return nil
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
