package engine

import "github.com/Aytaditya/pwc-hackathon/internal/models"

// defaultPainPoints is the last-resort suggestion list when both the
// structured and heuristic parses yield nothing.
func defaultPainPoints() []string {
	return []string{
		"Manual data entry processes",
		"Inefficient customer support",
		"Cybersecurity vulnerabilities",
		"Poor data analytics capabilities",
		"Compliance management challenges",
		"Sales process inefficiencies",
	}
}

// genericMatch is the floor of the fallback cascade: the one recommendation
// that is always available, even with an empty catalog and every external
// service down.
func genericMatch() models.ProjectMatch {
	return models.ProjectMatch{
		ProjectID:   "generic-automation",
		ProjectName: "Business Process Automation",
		MatchScore:  20,
		Explanation: "Generic recommendation for business process improvement and automation",
		AddressesPainPoints: []string{
			"Manual processes",
			"Inefficient workflows",
		},
		Summary:          "Automate repetitive business processes to improve efficiency",
		URL:              "#",
		DeploymentStatus: string(models.StatusAvailable),
	}
}

// genericPlan is the fixed integration plan used when the LLM output cannot
// be parsed into the expected shape.
func genericPlan() models.IntegrationPlan {
	return models.IntegrationPlan{
		TechnicalRequirements: []string{"API access", "Database connectivity"},
		Phases: models.Phases{
			{Name: "phase_1", Description: "Planning and setup (2 weeks)"},
			{Name: "phase_2", Description: "Implementation (4 weeks)"},
			{Name: "phase_3", Description: "Testing and deployment (2 weeks)"},
		},
		ResourceNeeds:   []string{"Technical team", "Project coordination"},
		Risks:           []string{"Integration complexity: use a phased approach"},
		SuccessMetrics:  []string{"Reduced processing time", "Improved accuracy"},
		NextSteps:       []string{"Schedule technical discussion", "Review requirements"},
		PilotSuggestion: "Start with a small pilot group to validate the workflow",
	}
}
