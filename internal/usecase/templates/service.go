// Package templates retrieves the email templates most relevant to a
// prospect, combining signal extraction, the candidate store, and the
// keyword ranker.
package templates

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/domain/query"
	"github.com/emailcraft/outreach/internal/domain/rank"
	"github.com/emailcraft/outreach/internal/logger"
	"github.com/emailcraft/outreach/internal/metrics"
)

const corpusLabel = "templates"

// Service handles template retrieval over a pluggable candidate store.
type Service struct {
	coll             Collection
	repo             Repository
	topK             int
	fallbackDistance float64
	byID             map[string]domain.EmailTemplate
}

// Options tune the retrieval pass.
type Options struct {
	TopK             int
	FallbackDistance float64
}

// New creates a template retrieval service. Call Init before first use.
func New(coll Collection, repo Repository, opts Options) *Service {
	if opts.TopK <= 0 {
		opts.TopK = 2
	}
	return &Service{
		coll:             coll,
		repo:             repo,
		topK:             opts.TopK,
		fallbackDistance: opts.FallbackDistance,
		byID:             make(map[string]domain.EmailTemplate),
	}
}

// Init loads the template corpus and bulk-indexes it when the collection
// is empty. Errors here are fatal: a service without a corpus cannot
// retrieve anything.
func (s *Service) Init(ctx context.Context) error {
	corpus, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("load template corpus: %w", err)
	}

	for _, t := range corpus {
		s.byID[t.ID] = t
	}

	count, err := s.coll.Count(ctx)
	if err != nil {
		return fmt.Errorf("count templates collection: %w", err)
	}
	if count > 0 {
		return nil
	}

	ids := make([]string, len(corpus))
	docs := make([]string, len(corpus))
	metas := make([]map[string]string, len(corpus))
	for i, t := range corpus {
		ids[i] = t.ID
		docs[i] = t.SearchText()
		metas[i] = map[string]string{
			"title":             t.Title,
			"industry":          t.Industry,
			"use_case":          t.UseCase,
			"performance_score": strconv.FormatFloat(t.PerformanceScore, 'f', -1, 64),
		}
	}
	if err := s.coll.Add(ctx, ids, docs, metas); err != nil {
		return fmt.Errorf("index template corpus: %w", err)
	}
	return nil
}

// Retrieve returns up to topK templates matching the prospect signals.
// Backend failures degrade to an empty result so a transient store
// outage never breaks email generation.
func (s *Service) Retrieve(
	ctx context.Context,
	job *domain.ScrapedJobData,
	persona *domain.PersonaOutput,
	product, industry string,
) ([]domain.RetrievedTemplate, error) {
	log := logger.FromContext(ctx)

	sig := query.Extract(job, persona, product, industry)
	if sig.Text == "" {
		log.Debug("no retrieval signal, skipping template query")
		metrics.RetrievalRequestsTotal.WithLabelValues(corpusLabel, "empty_query").Inc()
		return []domain.RetrievedTemplate{}, nil
	}
	if sig.InferredRole != "" {
		log.Debug("query keywords inferred from role", zap.String("role", sig.InferredRole))
	}

	res, err := s.coll.Query(ctx, sig.Text, rank.FetchSize(s.topK))
	if err != nil {
		log.Warn("template store query failed, returning empty result", zap.Error(err))
		metrics.RetrievalRequestsTotal.WithLabelValues(corpusLabel, "backend_error").Inc()
		return []domain.RetrievedTemplate{}, nil
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

	out := make([]domain.RetrievedTemplate, 0, len(ranked))
	for _, r := range ranked {
		t, ok := s.byID[r.ID]
		if !ok {
			log.Warn("ranked id missing from template corpus", zap.String("id", r.ID))
			continue
		}
		if r.FallbackMatch {
			log.Debug("template admitted via fallback terms",
				zap.String("id", r.ID), zap.Float64("distance", r.Distance))
		}
		out = append(out, domain.RetrievedTemplate{
			Template:        t,
			SimilarityScore: r.Similarity,
		})
	}

	metrics.RetrievalRequestsTotal.WithLabelValues(corpusLabel, "success").Inc()
	metrics.RetrievalResultsReturned.WithLabelValues(corpusLabel).Observe(float64(len(out)))
	log.Info("retrieved templates",
		zap.Int("returned", len(out)),
		zap.Int("skipped", len(skipped)))
	return out, nil
}
