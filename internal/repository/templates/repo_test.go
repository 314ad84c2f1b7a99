package templates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/domain"
)

func TestLoad_ValidCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	data := `{"templates": [
		{"id": "t1", "title": "Intro", "industry": "Technology", "use_case": "demo",
		 "subject_line": "Hi", "body": "Body", "cta": "Call", "performance_score": 7.0}
	]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := New(path, zap.NewNop())
	got, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" || got[0].PerformanceScore != 7.0 {
		t.Errorf("unexpected templates: %+v", got)
	}
}

func TestLoad_MissingFileBootstrapsStarterSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	repo := New(path, zap.NewNop())
	got, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(StarterTemplates()) {
		t.Fatalf("got %d templates, want %d", len(got), len(StarterTemplates()))
	}

	// The starter set must be persisted for the next run.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("starter corpus not written: %v", err)
	}
}

func TestLoad_EmptyCorpusIsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	if err := os.WriteFile(path, []byte(`{"templates": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := New(path, zap.NewNop())
	_, err := repo.Load()
	if !errors.Is(err, domain.ErrCorpusInvalid) {
		t.Errorf("err = %v, want ErrCorpusInvalid", err)
	}
}

func TestLoad_MalformedJSONIsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	if err := os.WriteFile(path, []byte(`{"templates": [`), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := New(path, zap.NewNop())
	_, err := repo.Load()
	if !errors.Is(err, domain.ErrCorpusInvalid) {
		t.Errorf("err = %v, want ErrCorpusInvalid", err)
	}
}
