// Package query derives retrieval signals (query text plus filter keywords)
// from job postings, persona insights, and role/industry strings.
package query

import (
	"strings"

	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/domain/match"
)

const (
	maxSkillPhrases          = 10
	maxKeywordPhrases        = 8
	maxResponsibilityPhrases = 3
	maxPainPointPhrases      = 2
	maxInferredSkills        = 4
	minKeywordLen            = 3
)

// Signals is the request-scoped bundle handed to the candidate store and the
// ranker. It is rebuilt on every retrieval call and never cached.
type Signals struct {
	// Text is the natural-language query string for the candidate store.
	Text string
	// FilterKeywords admit or reject ranked candidates by substring match.
	FilterKeywords match.TokenSet
	// InferredRole is set when the role-inference fallback replaced the
	// extracted keywords; it names the matched role-table entry.
	InferredRole string
}

// Extract derives retrieval signals from the available sources. All inputs
// are optional; an empty Signals.Text means "no signal available" and the
// caller must skip the backend query entirely.
func Extract(job *domain.ScrapedJobData, persona *domain.PersonaOutput, product, industry string) Signals {
	var phrases []string
	keywords := make(match.TokenSet)

	collect := func(phrase string) {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" || phraseExcluded(phrase) {
			return
		}
		phrases = append(phrases, phrase)
		for t := range match.Tokenize(phrase) {
			if len(t) >= minKeywordLen && !excludedTokens.Has(t) {
				keywords.Add(t)
			}
		}
	}

	if job != nil {
		for _, s := range head(job.Skills, maxSkillPhrases) {
			collect(s)
		}
		for _, kw := range head(job.Keywords, maxKeywordPhrases) {
			collect(kw)
		}
		for _, r := range head(job.Responsibilities, maxResponsibilityPhrases) {
			collect(r)
		}
	}
	if persona != nil {
		for _, p := range head(persona.PainPoints, maxPainPointPhrases) {
			collect(p)
		}
		collect(persona.ValueFocus)
	}
	collect(product)
	collect(industry)

	sig := Signals{FilterKeywords: keywords}

	// Extraction that yields no recognized technical token is treated as
	// scraper noise: discard it and infer skills from the role title instead.
	if !keywords.Intersects(knownTechTokens) {
		sig.FilterKeywords = make(match.TokenSet)
		if role := roleTitle(job, product); role != "" {
			if inferred, name := inferSkills(role); len(inferred) > 0 {
				sig.InferredRole = name
				skillPhrase := strings.Join(inferred, " ")
				phrases = append(phrases, skillPhrase)
				for t := range match.Tokenize(skillPhrase) {
					if len(t) >= minKeywordLen {
						sig.FilterKeywords.Add(t)
					}
				}
			}
		}
	}

	sig.Text = strings.TrimSpace(strings.Join(phrases, " "))
	return sig
}

// roleTitle picks the best available role string for inference.
func roleTitle(job *domain.ScrapedJobData, product string) string {
	if job != nil && job.Role != "" {
		return job.Role
	}
	return product
}

// inferSkills resolves a role title against the ordered role-skill table,
// falling back to a generic software stack for unmatched engineering titles.
func inferSkills(role string) ([]string, string) {
	lower := strings.ToLower(role)
	for _, entry := range roleSkillTable {
		if strings.Contains(lower, entry.role) {
			return head(entry.skills, maxInferredSkills), entry.role
		}
	}
	for _, term := range genericSoftwareTerms {
		if strings.Contains(lower, term) {
			return genericSoftwareSkills, "software"
		}
	}
	return nil, ""
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
