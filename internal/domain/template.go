package domain

// EmailTemplate is a stored outreach template record.
type EmailTemplate struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Industry         string  `json:"industry"`
	UseCase          string  `json:"use_case"`
	SubjectLine      string  `json:"subject_line"`
	Body             string  `json:"body"`
	CTA              string  `json:"cta"`
	PerformanceScore float64 `json:"performance_score"`
}

// SearchText builds the indexed text for a template.
func (t EmailTemplate) SearchText() string {
	return t.Title + " " + t.Industry + " " + t.UseCase + " " + t.SubjectLine + " " + t.Body
}

// RetrievedTemplate is a template with its query-time similarity attached.
type RetrievedTemplate struct {
	Template        EmailTemplate `json:"template"`
	SimilarityScore float64       `json:"similarity_score"`
}
