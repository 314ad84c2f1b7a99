// Package rank filters raw candidate-store hits against extracted keywords
// and assembles the final top-k list with clamped similarity scores.
package rank

import (
	"strings"

	"github.com/emailcraft/outreach/internal/domain/match"
)

// DefaultFallbackDistance is the slack threshold below which a candidate that
// fails the keyword test is still probed against the broader term whitelist.
// Tunable via configuration; the value itself is heuristic.
const DefaultFallbackDistance = 0.8

const maxFetch = 10

// Candidate is a raw hit returned by a candidate store, in backend order.
type Candidate struct {
	ID       string
	Document string
	Metadata map[string]string
	Distance float64
}

// Ranked is an accepted candidate with its similarity attached.
type Ranked struct {
	Candidate
	Similarity float64
	// FallbackMatch marks a lower-confidence admission through the broader
	// term whitelist rather than the primary keyword filter.
	FallbackMatch bool
	// MatchedKeywords lists the filter keywords found in the document.
	MatchedKeywords []string
}

// Options tune a ranking pass.
type Options struct {
	TopK             int
	FallbackDistance float64 // zero means DefaultFallbackDistance
}

// FetchSize returns how many raw candidates to over-fetch for a given top-k,
// leaving the filter slack to discard irrelevant hits: min(topK*3, 10).
func FetchSize(topK int) int {
	n := topK * 3
	if n > maxFetch {
		return maxFetch
	}
	return n
}

// Similarity converts a backend-native distance to a similarity clamped to [0,1].
func Similarity(distance float64) float64 {
	s := 1.0 - distance
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// Rank walks raw candidates in arrival order, admits those matching the
// filter keywords (or, for near hits, the broader fallback whitelist),
// and stops once topK are collected. Ties keep arrival order; skipped
// candidates are returned for diagnostics only. Every call is a pure
// function of its inputs.
func Rank(raw []Candidate, keywords match.TokenSet, opts Options) (accepted []Ranked, skipped []Candidate) {
	fallbackDistance := opts.FallbackDistance
	if fallbackDistance == 0 {
		fallbackDistance = DefaultFallbackDistance
	}

	for _, cand := range raw {
		if len(accepted) >= opts.TopK {
			break
		}

		text := strings.ToLower(cand.Document)

		matched := matchKeywords(text, keywords)
		isFallback := false
		if len(keywords) > 0 && len(matched) == 0 {
			// Borderline by distance: probe the broader whitelist before
			// discarding.
			if cand.Distance < fallbackDistance && matchesFallback(text) {
				isFallback = true
			} else {
				skipped = append(skipped, cand)
				continue
			}
		}

		accepted = append(accepted, Ranked{
			Candidate:       cand,
			Similarity:      Similarity(cand.Distance),
			FallbackMatch:   isFallback,
			MatchedKeywords: matched,
		})
	}

	return accepted, skipped
}

func matchKeywords(text string, keywords match.TokenSet) []string {
	var matched []string
	for kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func matchesFallback(text string) bool {
	for _, term := range fallbackTerms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
