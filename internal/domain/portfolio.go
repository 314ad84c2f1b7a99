package domain

import "strings"

// PortfolioEntry is a row of the portfolio corpus: a tech stack and a project link.
type PortfolioEntry struct {
	ID        string `json:"id"`
	TechStack string `json:"techstack"`
	Link      string `json:"link"`
}

// ValidLink reports whether a portfolio link carries an http(s) scheme.
func ValidLink(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}

// PortfolioItem is a retrieved portfolio entry shaped for the generation layer.
type PortfolioItem struct {
	Title           string  `json:"title"`
	TechStack       string  `json:"tech_stack"`
	Description     string  `json:"description"`
	Outcomes        string  `json:"outcomes"`
	Link            string  `json:"link"`
	SimilarityScore float64 `json:"similarity_score"`
}
