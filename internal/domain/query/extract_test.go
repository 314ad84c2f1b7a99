package query

import (
	"strings"
	"testing"

	"github.com/emailcraft/outreach/internal/domain"
)

func TestExtract_ExcludesBoilerplate(t *testing.T) {
	job := &domain.ScrapedJobData{
		Role:   "Backend Engineer",
		Skills: []string{"Health Insurance", "Python", "401k"},
	}

	sig := Extract(job, nil, "", "")

	if sig.FilterKeywords.Has("insurance") || sig.FilterKeywords.Has("health") || sig.FilterKeywords.Has("401k") {
		t.Errorf("exclusion-list tokens leaked into keywords: %v", sig.FilterKeywords)
	}
	if !sig.FilterKeywords.Has("python") {
		t.Errorf("python missing from keywords: %v", sig.FilterKeywords)
	}
	if strings.Contains(sig.Text, "Insurance") || strings.Contains(sig.Text, "401k") {
		t.Errorf("excluded phrases leaked into query text: %q", sig.Text)
	}
}

func TestExtract_RoleInferenceWhenNoTechTokens(t *testing.T) {
	job := &domain.ScrapedJobData{Role: "Senior Data Scientist"}

	sig := Extract(job, nil, "", "")

	if sig.InferredRole != "data scientist" {
		t.Fatalf("InferredRole = %q, want data scientist", sig.InferredRole)
	}
	if !sig.FilterKeywords.Has("python") {
		t.Errorf("inferred skills missing python: %v", sig.FilterKeywords)
	}
	if sig.Text == "" {
		t.Error("query text empty after inference")
	}
}

func TestExtract_NoInferenceWhenTechTokensPresent(t *testing.T) {
	job := &domain.ScrapedJobData{
		Role:   "Data Scientist",
		Skills: []string{"Rust", "Kafka"},
	}

	sig := Extract(job, nil, "", "")

	if sig.InferredRole != "" {
		t.Errorf("unexpected inference %q with recognized tokens present", sig.InferredRole)
	}
	if !sig.FilterKeywords.Has("rust") || !sig.FilterKeywords.Has("kafka") {
		t.Errorf("extracted keywords lost: %v", sig.FilterKeywords)
	}
}

func TestExtract_GenericSoftwareFallback(t *testing.T) {
	job := &domain.ScrapedJobData{Role: "Staff Software Wrangler"}

	sig := Extract(job, nil, "", "")

	if sig.InferredRole != "software" {
		t.Fatalf("InferredRole = %q, want software", sig.InferredRole)
	}
	for _, kw := range []string{"python", "java", "javascript", "react", "sql"} {
		if !sig.FilterKeywords.Has(kw) {
			t.Errorf("generic skill %q missing: %v", kw, sig.FilterKeywords)
		}
	}
}

func TestExtract_EmptyInputs(t *testing.T) {
	sig := Extract(nil, nil, "", "")

	if sig.Text != "" {
		t.Errorf("Text = %q, want empty", sig.Text)
	}
	if len(sig.FilterKeywords) != 0 {
		t.Errorf("FilterKeywords = %v, want empty", sig.FilterKeywords)
	}
}

func TestExtract_PersonaAndProductContribute(t *testing.T) {
	persona := &domain.PersonaOutput{
		PainPoints: []string{"slow deployments", "flaky tests", "ignored third pain point"},
		ValueFocus: "automation",
	}

	sig := Extract(nil, persona, "Terraform pipelines", "DevOps tooling")

	if !strings.Contains(sig.Text, "slow deployments") {
		t.Errorf("first pain point missing from text: %q", sig.Text)
	}
	if strings.Contains(sig.Text, "ignored third") {
		t.Errorf("pain points not capped at two: %q", sig.Text)
	}
	if !sig.FilterKeywords.Has("terraform") {
		t.Errorf("product tokens missing: %v", sig.FilterKeywords)
	}
	if !sig.FilterKeywords.Has("devops") {
		t.Errorf("industry tokens missing: %v", sig.FilterKeywords)
	}
}

func TestExtract_CapsPhraseCounts(t *testing.T) {
	skills := make([]string, 15)
	for i := range skills {
		skills[i] = "skillword" + string(rune('a'+i))
	}
	// The eleventh skill must not appear; keep one recognized token so
	// inference stays off.
	skills[0] = "python"
	job := &domain.ScrapedJobData{Skills: skills}

	sig := Extract(job, nil, "", "")

	if strings.Contains(sig.Text, "skillword"+string(rune('a'+12))) {
		t.Errorf("skills not capped at ten: %q", sig.Text)
	}
}
