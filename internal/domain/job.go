// Package domain holds the core types of the outreach retrieval system.
package domain

// ScrapedJobData is the structured output of the job-posting scraper.
// Every field is best-effort: the scraper may return any of them empty.
type ScrapedJobData struct {
	Role             string   `json:"role"`
	Skills           []string `json:"skills"`
	Experience       string   `json:"experience"`
	Responsibilities []string `json:"responsibilities"`
	Keywords         []string `json:"keywords"`
	Company          string   `json:"company,omitempty"`
}

// PersonaOutput is the persona analysis consumed by retrieval and generation.
type PersonaOutput struct {
	PainPoints         []string `json:"pain_points"`
	DecisionDrivers    []string `json:"decision_drivers"`
	CommunicationStyle string   `json:"communication_style"`
	Tone               string   `json:"tone"`
	ValueFocus         string   `json:"value_focus"`
}
