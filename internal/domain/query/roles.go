package query

import "github.com/emailcraft/outreach/internal/domain/match"

// knownTechTokens is the whitelist of recognized technical skill tokens. If an
// extraction yields no token from this set, the upstream scraper most likely
// returned noise and role inference takes over.
var knownTechTokens = match.NewTokenSet(
	"python", "java", "javascript", "typescript", "golang", "rust", "c++", "c#",
	"php", "ruby", "swift", "kotlin", "scala", "react", "angular", "vue",
	"node", "django", "flask", "spring", "rails", "flutter", "android", "ios",
	"frontend", "backend", "fullstack", "sql", "postgresql", "mysql", "mongodb",
	"redis", "elasticsearch", "kafka", "spark", "airflow", "hadoop", "etl",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins",
	"ansible", "linux", "graphql", "grpc", "tensorflow", "pytorch", "pandas",
	"numpy", "tableau", "excel", "salesforce", "hubspot", "seo", "ppc",
	"wordpress", "figma", "sketch", "photoshop", "jira", "workday",
	"quickbooks", "sap",
)

// roleSkills maps a role-title substring to representative skills. Entries are
// ordered most-specific first; the first substring hit wins.
type roleSkills struct {
	role   string
	skills []string
}

var roleSkillTable = []roleSkills{
	// Engineering
	{"full stack", []string{"react", "node.js", "mongodb", "javascript", "typescript"}},
	{"frontend", []string{"react", "angular", "vue", "javascript", "css"}},
	{"backend", []string{"python", "java", "node.js", "postgresql", "api"}},
	{"machine learning", []string{"python", "tensorflow", "pytorch", "machine learning"}},
	{"data scientist", []string{"python", "machine learning", "tensorflow", "pandas", "sql"}},
	{"data engineer", []string{"python", "sql", "spark", "airflow", "aws"}},
	{"data analyst", []string{"sql", "excel", "python", "tableau", "power bi"}},
	{"devops", []string{"docker", "kubernetes", "jenkins", "aws", "terraform"}},
	{"site reliability", []string{"kubernetes", "terraform", "prometheus", "linux", "aws"}},
	{"mobile", []string{"react native", "flutter", "ios", "android", "swift"}},
	{"cloud", []string{"aws", "azure", "gcp", "kubernetes", "docker"}},
	{"security", []string{"security", "penetration testing", "siem", "compliance", "linux"}},
	{"qa", []string{"selenium", "test automation", "cypress", "api testing"}},
	{"quality assurance", []string{"selenium", "test automation", "cypress", "api testing"}},
	{"embedded", []string{"c++", "firmware", "rtos", "microcontrollers"}},
	// Data & product
	{"product manager", []string{"product management", "agile", "roadmap", "jira"}},
	{"product", []string{"product management", "agile", "roadmap", "user stories"}},
	{"project manager", []string{"project management", "agile", "scrum", "jira"}},
	// Marketing
	{"digital marketing", []string{"seo", "ppc", "google ads", "analytics"}},
	{"content", []string{"content writing", "copywriting", "seo", "wordpress"}},
	{"marketing", []string{"seo", "google analytics", "hubspot", "social media"}},
	{"social media", []string{"social media", "content", "analytics", "campaigns"}},
	// Sales
	{"business development", []string{"lead generation", "crm", "sales", "partnerships"}},
	{"account", []string{"salesforce", "account management", "crm", "client relations"}},
	{"sales", []string{"salesforce", "crm", "lead generation", "b2b"}},
	// Finance
	{"accountant", []string{"quickbooks", "excel", "gaap", "tax"}},
	{"finance", []string{"excel", "financial modeling", "accounting", "sap"}},
	{"analyst", []string{"excel", "sql", "financial analysis", "reporting"}},
	// HR
	{"recruiter", []string{"linkedin", "ats", "sourcing", "interviewing"}},
	{"hr", []string{"workday", "recruiting", "ats", "hris"}},
	// Design
	{"ux", []string{"figma", "user research", "wireframing", "prototyping"}},
	{"designer", []string{"figma", "adobe", "sketch", "photoshop"}},
	// Operations
	{"operations", []string{"project management", "process improvement", "erp", "logistics"}},
	{"logistics", []string{"supply chain", "erp", "logistics", "inventory"}},
	// Healthcare
	{"nurse", []string{"patient care", "ehr", "clinical", "healthcare"}},
	{"healthcare", []string{"ehr", "hipaa", "clinical", "patient care"}},
	// Education
	{"teacher", []string{"curriculum", "lesson planning", "classroom", "education"}},
	{"education", []string{"curriculum", "instructional design", "lms", "education"}},
	// Support
	{"customer success", []string{"crm", "onboarding", "retention", "client relations"}},
	{"support", []string{"zendesk", "crm", "troubleshooting", "customer service"}},
}

// genericSoftwareSkills backs roles that only mention generic software terms.
var genericSoftwareSkills = []string{"python", "java", "javascript", "react", "sql"}

var genericSoftwareTerms = []string{"software", "engineer", "developer", "programmer"}
