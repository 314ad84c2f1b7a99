package rank

// fallbackTerms is the broader whitelist used for borderline candidates that
// fail the primary keyword test but sit close to the query in the backend's
// distance space. It spans common professional and technical vocabulary
// across industries, so a generically relevant candidate is surfaced at
// lower confidence instead of being discarded.
var fallbackTerms = []string{
	"software", "development", "engineering", "web", "data", "analytics",
	"cloud", "infrastructure", "platform", "automation", "integration",
	"api", "database", "frontend", "backend", "mobile", "security",
	"testing", "devops", "machine learning", "dashboard", "reporting",
	"design", "marketing", "sales", "crm", "erp", "ecommerce", "finance",
	"accounting", "consulting", "management", "operations", "logistics",
	"recruiting", "payroll", "healthcare", "education", "support",
	"compliance", "research", "content", "campaign", "branding",
}
