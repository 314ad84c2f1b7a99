// Package portfolio loads the portfolio corpus from a CSV file with
// Techstack and Links columns.
package portfolio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/domain"
)

// Repo reads and appends portfolio CSV rows.
type Repo struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// New creates a portfolio repository for the given CSV file.
func New(path string, logger *zap.Logger) *Repo {
	return &Repo{path: path, logger: logger}
}

// Load reads all valid portfolio entries. Rows with an empty tech stack
// or a link without an http(s) scheme are skipped with a warning rather
// than failing the whole corpus.
func (r *Repo) Load() ([]domain.PortfolioEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("portfolio corpus %s does not exist: %w", r.path, domain.ErrCorpusNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open portfolio corpus %s: %w", r.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse portfolio corpus %s: %w: %v", r.path, domain.ErrCorpusInvalid, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("portfolio corpus %s is empty: %w", r.path, domain.ErrCorpusInvalid)
	}

	techIdx, linkIdx := -1, -1
	for i, col := range records[0] {
		switch col {
		case "Techstack":
			techIdx = i
		case "Links":
			linkIdx = i
		}
	}
	if techIdx < 0 || linkIdx < 0 {
		return nil, fmt.Errorf("portfolio corpus %s must have Techstack and Links columns: %w",
			r.path, domain.ErrCorpusInvalid)
	}

	entries := make([]domain.PortfolioEntry, 0, len(records)-1)
	for i, row := range records[1:] {
		if techIdx >= len(row) || linkIdx >= len(row) {
			r.logger.Warn("skipping short portfolio row", zap.Int("row", i+1))
			continue
		}
		entry := domain.PortfolioEntry{
			ID:        fmt.Sprintf("portfolio_%d", len(entries)),
			TechStack: row[techIdx],
			Link:      row[linkIdx],
		}
		if entry.TechStack == "" || !domain.ValidLink(entry.Link) {
			r.logger.Warn("skipping invalid portfolio row",
				zap.Int("row", i+1), zap.String("link", entry.Link))
			continue
		}
		entries = append(entries, entry)
	}

	r.logger.Info("loaded portfolio entries", zap.Int("count", len(entries)))
	return entries, nil
}

// Append adds one entry to the CSV file. The file is rewritten through a
// temp file and renamed so a crash cannot leave a half-written corpus.
func (r *Repo) Append(entry domain.PortfolioEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := [][]string{{"Techstack", "Links"}}

	if data, err := os.ReadFile(r.path); err == nil {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		existing, err := reader.ReadAll()
		if err != nil {
			return fmt.Errorf("parse portfolio corpus %s: %w: %v", r.path, domain.ErrCorpusInvalid, err)
		}
		if len(existing) > 0 {
			records = existing
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read portfolio corpus %s: %w", r.path, err)
	}

	records = append(records, []string{entry.TechStack, entry.Link})

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create corpus dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "portfolio-*.csv")
	if err != nil {
		return fmt.Errorf("create temp corpus: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write portfolio corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp corpus: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace portfolio corpus: %w", err)
	}

	r.logger.Info("appended portfolio entry", zap.String("techstack", entry.TechStack))
	return nil
}
