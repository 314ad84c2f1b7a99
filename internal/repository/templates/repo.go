// Package templates loads the email template corpus from disk.
package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/domain"
)

// Repo reads and bootstraps the JSON template corpus.
type Repo struct {
	path   string
	logger *zap.Logger
}

// New creates a template repository for the given corpus file.
func New(path string, logger *zap.Logger) *Repo {
	return &Repo{path: path, logger: logger}
}

type corpusFile struct {
	Templates []domain.EmailTemplate `json:"templates"`
}

// Load reads all templates from the corpus file. When the file does not
// exist it is created with the built-in starter set so a fresh checkout
// works out of the box.
func (r *Repo) Load() ([]domain.EmailTemplate, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		r.logger.Warn("template corpus not found, writing starter set", zap.String("path", r.path))
		return r.bootstrap()
	}
	if err != nil {
		return nil, fmt.Errorf("read template corpus %s: %w", r.path, err)
	}

	var file corpusFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse template corpus %s: %w: %v", r.path, domain.ErrCorpusInvalid, err)
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("template corpus %s has no templates: %w", r.path, domain.ErrCorpusInvalid)
	}

	r.logger.Info("loaded email templates", zap.Int("count", len(file.Templates)))
	return file.Templates, nil
}

// bootstrap writes the starter templates to the corpus path and returns them.
func (r *Repo) bootstrap() ([]domain.EmailTemplate, error) {
	starter := StarterTemplates()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return nil, fmt.Errorf("create corpus dir: %w", err)
	}
	data, err := json.MarshalIndent(corpusFile{Templates: starter}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode starter templates: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write starter templates: %w", err)
	}

	r.logger.Info("created starter template corpus", zap.Int("count", len(starter)), zap.String("path", r.path))
	return starter, nil
}

// StarterTemplates is the built-in corpus used when no template file exists.
func StarterTemplates() []domain.EmailTemplate {
	return []domain.EmailTemplate{
		{
			ID:               "template_1",
			Title:            "Problem-Solution B2B",
			Industry:         "Technology",
			UseCase:          "SaaS product intro",
			SubjectLine:      "Quick question about {company}",
			Body:             "Hi {name},\n\nI noticed {company} is focused on {value}. Many {role}s struggle with {pain_point}.\n\n{product} solves this by {solution}.\n\nWould you be open to a brief chat?\n\nBest,\n{sender}",
			CTA:              "Schedule a 15-minute call",
			PerformanceScore: 8.5,
		},
		{
			ID:               "template_2",
			Title:            "Value-First Approach",
			Industry:         "General",
			UseCase:          "Product demo",
			SubjectLine:      "How {company} can achieve {benefit}",
			Body:             "Hi {name},\n\n{product} has helped similar companies achieve {metric}.\n\nI'd love to show you how it works.\n\nInterested in a quick demo?\n\nBest,\n{sender}",
			CTA:              "Book a demo",
			PerformanceScore: 8.0,
		},
		{
			ID:               "template_3",
			Title:            "Social Proof",
			Industry:         "General",
			UseCase:          "Case study sharing",
			SubjectLine:      "How {similar_company} solved {problem}",
			Body:             "Hi {name},\n\n{similar_company} recently used {product} to {achievement}.\n\nThought this might be relevant for {company}.\n\nWant to see the case study?\n\nBest,\n{sender}",
			CTA:              "View case study",
			PerformanceScore: 7.5,
		},
	}
}
