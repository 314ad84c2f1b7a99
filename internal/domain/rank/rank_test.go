package rank

import (
	"testing"

	"github.com/emailcraft/outreach/internal/domain/match"
)

func TestFetchSize(t *testing.T) {
	tests := []struct {
		topK, want int
	}{
		{1, 3},
		{2, 6},
		{3, 9},
		{4, 10},
		{100, 10},
	}
	for _, tt := range tests {
		if got := FetchSize(tt.topK); got != tt.want {
			t.Errorf("FetchSize(%d) = %d, want %d", tt.topK, got, tt.want)
		}
	}
}

func TestSimilarity_Clamped(t *testing.T) {
	tests := []struct {
		distance, want float64
	}{
		{0, 1},
		{0.25, 0.75},
		{1, 0},
		{1.7, 0},  // cosine distance can exceed 1
		{-0.5, 1}, // and float error can push it below 0
	}
	for _, tt := range tests {
		if got := Similarity(tt.distance); got != tt.want {
			t.Errorf("Similarity(%g) = %g, want %g", tt.distance, got, tt.want)
		}
	}
}

func TestRank_KeywordFilterAndTopK(t *testing.T) {
	raw := []Candidate{
		{ID: "a", Document: "Go Redis services", Distance: 0.1},
		{ID: "b", Document: "knitting patterns", Distance: 0.2},
		{ID: "c", Document: "Redis cluster ops", Distance: 0.3},
		{ID: "d", Document: "redis again", Distance: 0.4},
	}
	keywords := match.NewTokenSet("redis")

	accepted, skipped := Rank(raw, keywords, Options{TopK: 2})

	if len(accepted) != 2 || accepted[0].ID != "a" || accepted[1].ID != "c" {
		t.Fatalf("accepted = %+v, want [a c]", accepted)
	}
	if len(skipped) != 1 || skipped[0].ID != "b" {
		t.Errorf("skipped = %+v, want [b]", skipped)
	}
	if accepted[0].Similarity != 0.9 {
		t.Errorf("similarity = %g, want 0.9", accepted[0].Similarity)
	}
	if len(accepted[0].MatchedKeywords) != 1 || accepted[0].MatchedKeywords[0] != "redis" {
		t.Errorf("matched = %v, want [redis]", accepted[0].MatchedKeywords)
	}
}

func TestRank_EmptyKeywordsAdmitAll(t *testing.T) {
	raw := []Candidate{
		{ID: "a", Document: "anything", Distance: 0.9},
		{ID: "b", Document: "at all", Distance: 0.95},
	}

	accepted, skipped := Rank(raw, match.TokenSet{}, Options{TopK: 5})

	if len(accepted) != 2 || len(skipped) != 0 {
		t.Errorf("accepted %d skipped %d, want 2 and 0", len(accepted), len(skipped))
	}
}

func TestRank_FallbackAdmission(t *testing.T) {
	raw := []Candidate{
		// No keyword hit, near by distance, contains a professional term.
		{ID: "near", Document: "engineering team delivery", Distance: 0.5},
		// No keyword hit and too far for the fallback probe.
		{ID: "far", Document: "engineering experience", Distance: 0.95},
		// Near but no professional term either.
		{ID: "noise", Document: "xyzzy", Distance: 0.1},
	}
	keywords := match.NewTokenSet("rust")

	accepted, skipped := Rank(raw, keywords, Options{TopK: 5})

	if len(accepted) != 1 || accepted[0].ID != "near" {
		t.Fatalf("accepted = %+v, want [near]", accepted)
	}
	if !accepted[0].FallbackMatch {
		t.Error("near admission not flagged as fallback")
	}
	if len(skipped) != 2 {
		t.Errorf("skipped = %+v, want 2 entries", skipped)
	}
}

func TestRank_FallbackDistanceConfigurable(t *testing.T) {
	raw := []Candidate{
		{ID: "a", Document: "engineering delivery", Distance: 0.5},
	}
	keywords := match.NewTokenSet("rust")

	accepted, _ := Rank(raw, keywords, Options{TopK: 1, FallbackDistance: 0.3})
	if len(accepted) != 0 {
		t.Errorf("tightened threshold still admitted %+v", accepted)
	}

	accepted, _ = Rank(raw, keywords, Options{TopK: 1, FallbackDistance: 0.6})
	if len(accepted) != 1 {
		t.Errorf("loosened threshold rejected the candidate")
	}
}

func TestRank_EarlyExitPreservesArrivalOrder(t *testing.T) {
	raw := make([]Candidate, 6)
	for i := range raw {
		raw[i] = Candidate{ID: string(rune('a' + i)), Document: "go services", Distance: 0.2}
	}
	keywords := match.NewTokenSet("services")

	accepted, skipped := Rank(raw, keywords, Options{TopK: 3})

	if len(accepted) != 3 {
		t.Fatalf("accepted %d, want 3", len(accepted))
	}
	for i, want := range []string{"a", "b", "c"} {
		if accepted[i].ID != want {
			t.Errorf("accepted[%d] = %q, want %q", i, accepted[i].ID, want)
		}
	}
	// Early exit: candidates after the cut are neither accepted nor skipped.
	if len(skipped) != 0 {
		t.Errorf("skipped = %+v, want none", skipped)
	}
}
