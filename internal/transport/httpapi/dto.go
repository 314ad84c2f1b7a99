package httpapi

import "github.com/emailcraft/outreach/internal/domain"

// retrieveRequest carries the prospect signals for both retrieval endpoints.
type retrieveRequest struct {
	Job      *domain.ScrapedJobData `json:"job,omitempty"`
	Persona  *domain.PersonaOutput  `json:"persona,omitempty"`
	Product  string                 `json:"product"`
	Industry string                 `json:"industry"`
}

type templatesResponse struct {
	Items []domain.RetrievedTemplate `json:"items"`
	Total int                        `json:"total"`
}

type portfolioResponse struct {
	Items []domain.PortfolioItem `json:"items"`
	Total int                    `json:"total"`
}

type addItemRequest struct {
	TechStack string `json:"techstack"`
	Link      string `json:"link"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
