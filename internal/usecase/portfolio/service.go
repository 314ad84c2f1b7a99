// Package portfolio retrieves portfolio projects relevant to a prospect
// and supports adding new entries at runtime.
package portfolio

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/domain/query"
	"github.com/emailcraft/outreach/internal/domain/rank"
	"github.com/emailcraft/outreach/internal/logger"
	"github.com/emailcraft/outreach/internal/metrics"
)

const corpusLabel = "portfolio"

// Service handles portfolio retrieval and live additions.
type Service struct {
	coll             Collection
	repo             Repository
	topK             int
	fallbackDistance float64

	mu   sync.RWMutex
	byID map[string]domain.PortfolioEntry
}

// Options tune the retrieval pass.
type Options struct {
	TopK             int
	FallbackDistance float64
}

// New creates a portfolio retrieval service. Call Init before first use.
func New(coll Collection, repo Repository, opts Options) *Service {
	if opts.TopK <= 0 {
		opts.TopK = 2
	}
	return &Service{
		coll:             coll,
		repo:             repo,
		topK:             opts.TopK,
		fallbackDistance: opts.FallbackDistance,
		byID:             make(map[string]domain.PortfolioEntry),
	}
}

// Init loads the portfolio corpus and bulk-indexes it when the collection
// is empty. Errors are fatal.
func (s *Service) Init(ctx context.Context) error {
	entries, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("load portfolio corpus: %w", err)
	}

	s.mu.Lock()
	for _, e := range entries {
		s.byID[e.ID] = e
	}
	s.mu.Unlock()

	count, err := s.coll.Count(ctx)
	if err != nil {
		return fmt.Errorf("count portfolio collection: %w", err)
	}
	if count > 0 {
		return nil
	}

	ids := make([]string, len(entries))
	docs := make([]string, len(entries))
	metas := make([]map[string]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
		docs[i] = e.TechStack
		metas[i] = map[string]string{"link": e.Link}
	}
	if err := s.coll.Add(ctx, ids, docs, metas); err != nil {
		return fmt.Errorf("index portfolio corpus: %w", err)
	}
	return nil
}

// Retrieve returns up to topK portfolio items matching the prospect
// signals, shaped for the generation layer. Backend failures degrade to
// an empty result.
func (s *Service) Retrieve(
	ctx context.Context,
	job *domain.ScrapedJobData,
	persona *domain.PersonaOutput,
	product, industry string,
) ([]domain.PortfolioItem, error) {
	log := logger.FromContext(ctx)

	sig := query.Extract(job, persona, product, industry)
	if sig.Text == "" {
		log.Debug("no retrieval signal, skipping portfolio query")
		metrics.RetrievalRequestsTotal.WithLabelValues(corpusLabel, "empty_query").Inc()
		return []domain.PortfolioItem{}, nil
	}

	res, err := s.coll.Query(ctx, sig.Text, rank.FetchSize(s.topK))
	if err != nil {
		log.Warn("portfolio store query failed, returning empty result", zap.Error(err))
		metrics.RetrievalRequestsTotal.WithLabelValues(corpusLabel, "backend_error").Inc()
		return []domain.PortfolioItem{}, nil
	}

	raw := make([]rank.Candidate, res.Len())
	for i := range res.IDs {
		raw[i] = rank.Candidate{
			ID:       res.IDs[i],
			Document: res.Documents[i],
			Metadata: res.Metadatas[i],
			Distance: res.Distances[i],
		}
	}

	ranked, skipped := rank.Rank(raw, sig.FilterKeywords, rank.Options{
		TopK:             s.topK,
		FallbackDistance: s.fallbackDistance,
	})
	metrics.RetrievalCandidatesSkipped.WithLabelValues(corpusLabel).Add(float64(len(skipped)))

	out := make([]domain.PortfolioItem, 0, len(ranked))
	for _, r := range ranked {
		s.mu.RLock()
		entry, ok := s.byID[r.ID]
		s.mu.RUnlock()
		if !ok {
			log.Warn("ranked id missing from portfolio corpus", zap.String("id", r.ID))
			continue
		}
		out = append(out, buildItem(entry, r.Similarity))
	}

	metrics.RetrievalRequestsTotal.WithLabelValues(corpusLabel, "success").Inc()
	metrics.RetrievalResultsReturned.WithLabelValues(corpusLabel).Observe(float64(len(out)))
	log.Info("retrieved portfolio items",
		zap.Int("returned", len(out)),
		zap.Int("skipped", len(skipped)))
	return out, nil
}

// AddItem validates and indexes a new portfolio entry, then persists it
// to the CSV corpus. The id is derived from the live collection count.
func (s *Service) AddItem(ctx context.Context, techstack, link string) error {
	if strings.TrimSpace(techstack) == "" {
		return fmt.Errorf("techstack cannot be empty: %w", domain.ErrInvalidInput)
	}
	if !domain.ValidLink(link) {
		return fmt.Errorf("link must start with http:// or https://: %w", domain.ErrInvalidInput)
	}

	count, err := s.coll.Count(ctx)
	if err != nil {
		return fmt.Errorf("count portfolio collection: %w", err)
	}

	entry := domain.PortfolioEntry{
		ID:        fmt.Sprintf("portfolio_%d", count),
		TechStack: techstack,
		Link:      link,
	}

	if err := s.coll.Add(ctx,
		[]string{entry.ID},
		[]string{entry.TechStack},
		[]map[string]string{{"link": entry.Link}},
	); err != nil {
		return fmt.Errorf("index portfolio entry: %w", err)
	}

	if err := s.repo.Append(entry); err != nil {
		return fmt.Errorf("persist portfolio entry: %w", err)
	}

	s.mu.Lock()
	s.byID[entry.ID] = entry
	s.mu.Unlock()

	logger.FromContext(ctx).Info("added portfolio entry",
		zap.String("id", entry.ID), zap.String("techstack", techstack))
	return nil
}

// buildItem shapes a corpus entry for the generation layer.
func buildItem(entry domain.PortfolioEntry, similarity float64) domain.PortfolioItem {
	return domain.PortfolioItem{
		Title:           "Project with " + entry.TechStack,
		TechStack:       entry.TechStack,
		Description:     "Portfolio project showcasing expertise in " + entry.TechStack,
		Outcomes:        "Demonstrated proficiency and practical experience",
		Link:            entry.Link,
		SimilarityScore: similarity,
	}
}
