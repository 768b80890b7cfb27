package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/llm"
	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

// Plan generates a structured integration plan for the selected project.
// A malformed model response degrades to a fixed generic plan with the same
// shape; the caller never sees a failure.
func (e *Engine) Plan(ctx context.Context, info models.CompanyInfo, project models.ProjectMatch, userInterest, currentSystems string) models.IntegrationPlan {
	req := llm.Request{
		Prompt:      planPrompt(info, project, userInterest, currentSystems),
		MaxTokens:   600,
		Temperature: 0.3,
	}

	validate := func(p models.IntegrationPlan) error {
		if len(p.TechnicalRequirements) == 0 && len(p.Phases) == 0 {
			return fmt.Errorf("plan has no requirements or phases")
		}
		return nil
	}

	plan, _ := llm.StructuredCall(ctx, e.llm, req, validate,
		func(string) (models.IntegrationPlan, bool) {
			e.log.Warn("integration plan degraded to generic template",
				zap.String("company", info.Name),
				zap.String("project", project.ProjectID))
			return genericPlan(), true
		},
	)
	return plan
}

func planPrompt(info models.CompanyInfo, project models.ProjectMatch, userInterest, currentSystems string) string {
	if currentSystems == "" {
		currentSystems = "Not specified"
	}
	if userInterest == "" {
		userInterest = "Evaluating fit for the confirmed pain points"
	}

	return fmt.Sprintf(`Company: %s
Project: %s
Project Summary: %s
User Interest: %s
Current Systems: %s

Generate a detailed integration plan including:
1. Technical requirements
2. Implementation phases with timeline estimates
3. Resource needs
4. Risks and mitigation
5. Success metrics
6. Next steps
7. A pilot suggestion

Return as JSON:
{
  "technical_requirements": ["req1", "req2"],
  "implementation_phases": {
    "phase_1": "Discovery and Planning (1-2 weeks)",
    "phase_2": "Development and Testing (3-4 weeks)",
    "phase_3": "Deployment and Training (1-2 weeks)"
  },
  "resource_needs": ["2 developers", "1 project manager"],
  "risks_and_mitigation": ["Risk 1: mitigation strategy"],
  "success_metrics": ["metric1", "metric2"],
  "next_steps": ["Schedule technical review", "Prepare pilot environment"],
  "pilot_suggestion": "suggestion for a pilot implementation"
}`, info.Name, project.ProjectName, project.Summary, userInterest, currentSystems)
}
