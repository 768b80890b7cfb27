package catalog

import "strings"

// techKeywords are the technology names the graph builder recognizes in
// project summaries.
var techKeywords = []string{
	"AI", "GenAI", "LLM", "Machine Learning", "ML", "Deep Learning",
	"Natural Language Processing", "NLP", "Computer Vision", "CV",
	"Python", "JavaScript", "React", "Node.js", "Azure", "AWS",
	"Docker", "Kubernetes", "API", "REST", "GraphQL", "SQL",
	"NoSQL", "MongoDB", "PostgreSQL", "Redis", "Elasticsearch",
	"Microservices", "Serverless", "Cloud", "IoT", "Blockchain",
	"Chatbot", "Voice AI", "Recommendation Engine", "Analytics",
	"Data Science", "Big Data", "Real-time", "Streaming",
	"Twilio", "GPT", "OpenAI", "Anthropic", "Claude", "Excel",
	"CSV", "Dashboard", "Simulation", "Telemetry", "Forecasting",
}

// domainRules maps a broad domain to the keywords that place a project in it.
var domainRules = []struct {
	domain   string
	keywords []string
}{
	{"Artificial Intelligence", []string{"AI", "GenAI", "LLM", "Machine Learning", "Natural Language", "Recommendation", "Analytics"}},
	{"Security", []string{"Security", "Cybersecurity", "Injection", "Firewall", "Compliance", "Privacy"}},
	{"Business Operations", []string{"Sales", "HR", "Human Resources", "Customer", "E-commerce", "Retail", "Operations"}},
	{"Data & Analytics", []string{"Data", "Analytics", "CSV", "Query", "Database", "Analysis", "Reporting"}},
	{"Manufacturing & Industrial", []string{"Manufacturing", "Industrial", "IoT", "Automation", "Factory", "Telemetry"}},
	{"Legal & Compliance", []string{"Legal", "Compliance", "Contract", "Regulation", "GDPR", "HIPAA"}},
}

// Technologies extracts the technology keywords mentioned in a summary.
func Technologies(summary string) []string {
	lower := strings.ToLower(summary)
	var found []string
	for _, tech := range techKeywords {
		if strings.Contains(lower, strings.ToLower(tech)) {
			found = append(found, tech)
		}
	}
	return found
}

// Domains categorizes a project into broader domains from its industries,
// capabilities, and pain points. Keyword matching is case-sensitive, as the
// catalog uses canonical casing for these attributes. A project that fits
// nothing lands in "General".
func Domains(industries, capabilities, painPoints []string) []string {
	var parts []string
	parts = append(parts, industries...)
	parts = append(parts, capabilities...)
	parts = append(parts, painPoints...)
	all := strings.Join(parts, " ")

	var domains []string
	for _, rule := range domainRules {
		for _, kw := range rule.keywords {
			if strings.Contains(all, kw) {
				domains = append(domains, rule.domain)
				break
			}
		}
	}
	if len(domains) == 0 {
		domains = []string{"General"}
	}
	return domains
}
