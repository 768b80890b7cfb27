// Package tools implements the MCP tool handlers for the recommendation
// assistant. Handlers translate between the tool protocol and the engine:
// inputs are validated at this boundary, engine results are rendered as
// markdown transcripts, and session errors surface as actionable tool errors
// rather than protocol failures.
package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/engine"
	"github.com/Aytaditya/pwc-hackathon/internal/models"
	"github.com/Aytaditya/pwc-hackathon/internal/search"
	"github.com/Aytaditya/pwc-hackathon/internal/session"
)

// AnalysisTools holds references needed by the conversation tool handlers.
type AnalysisTools struct {
	Sessions *session.Store
	Engine   *engine.Engine
	Search   search.Searcher
	Log      *zap.Logger
}

// --- Input types ---

type StartCompanyAnalysisInput struct {
	CompanyName string `json:"company_name" jsonschema:"Name of the company to analyze"`
}

type SuggestPainPointsInput struct {
	CompanyName string `json:"company_name" jsonschema:"Company with an active analysis session"`
}

type ConfirmPainPointsInput struct {
	CompanyName        string `json:"company_name" jsonschema:"Company with suggested pain points"`
	SelectedPainPoints []any  `json:"selected_pain_points" jsonschema:"Pain points to confirm: 1-based numbers from the suggested list and/or custom pain point strings"`
}

type SelectProjectInput struct {
	CompanyName      string `json:"company_name" jsonschema:"Company with project recommendations"`
	ProjectSelection string `json:"project_selection" jsonschema:"1-based number from the recommendation list, or a project name"`
	UserInterest     string `json:"user_interest,omitempty" jsonschema:"What the user wants to achieve with this project"`
	CurrentSystems   string `json:"current_systems,omitempty" jsonschema:"Systems the company currently runs, for integration planning"`
}

type GetSessionSummaryInput struct {
	CompanyName string `json:"company_name" jsonschema:"Company whose session to summarize"`
}

// --- Handlers ---

// StartCompanyAnalysis begins a fresh analysis session for a company. Any
// existing session for the same company is replaced. A failed web lookup is
// recorded on the session and the conversation continues with an empty
// profile.
func (t *AnalysisTools) StartCompanyAnalysis(ctx context.Context, _ *mcp.CallToolRequest, input StartCompanyAnalysisInput) (*mcp.CallToolResult, any, error) {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return toolError("Company name is required"), nil, nil
	}

	info, err := t.Search.Lookup(ctx, name)
	if err != nil {
		t.Log.Warn("company lookup failed, continuing with empty profile",
			zap.String("company", name),
			zap.Error(err))
		info = models.CompanyInfo{Name: name, SearchError: err.Error()}
	}

	s := t.Sessions.Start(name, info)

	var b strings.Builder
	fmt.Fprintf(&b, "# Company Analysis Started: %s\n\n", s.CompanyName)
	if info.SearchError != "" {
		b.WriteString("Web search was unavailable, so the analysis will rely on general business knowledge.\n\n")
	} else {
		b.WriteString("## What I found\n\n")
		if info.KnowledgePanel.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", info.KnowledgePanel.Description)
		}
		if info.AnswerBox != "" {
			fmt.Fprintf(&b, "%s\n\n", info.AnswerBox)
		}
		for _, r := range info.Results {
			fmt.Fprintf(&b, "- **%s**: %s\n", r.Title, r.Snippet)
		}
		b.WriteString("\n")
	}
	b.WriteString("**Next step:** call `suggest_pain_points` to identify likely business challenges.")

	return toolText(b.String()), nil, nil
}

// SuggestPainPoints proposes candidate pain points from the company profile.
// Re-running it regenerates the suggestions without moving the session
// backwards.
func (t *AnalysisTools) SuggestPainPoints(ctx context.Context, _ *mcp.CallToolRequest, input SuggestPainPointsInput) (*mcp.CallToolResult, any, error) {
	s, err := t.Sessions.Get(input.CompanyName)
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	points := t.Engine.Suggest(ctx, s.CompanyInfo)

	s, err = t.Sessions.Update(input.CompanyName, func(cs *models.CompanySession) error {
		cs.SuggestedPainPoints = points
		cs.Advance(models.StatePainPointsSuggested)
		return nil
	})
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Suggested Pain Points for %s\n\n", s.CompanyName)
	for i, p := range s.SuggestedPainPoints {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	b.WriteString("\n**Next step:** call `confirm_pain_points` with the numbers that apply")
	b.WriteString(" (you can also add custom pain points as text).")

	return toolText(b.String()), nil, nil
}

// ConfirmPainPoints locks in the selected pain points and produces project
// recommendations. An out-of-range number rejects the whole call and leaves
// the session untouched.
func (t *AnalysisTools) ConfirmPainPoints(ctx context.Context, _ *mcp.CallToolRequest, input ConfirmPainPointsInput) (*mcp.CallToolResult, any, error) {
	selections, err := session.ParseSelections(input.SelectedPainPoints)
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	s, err := t.Sessions.Get(input.CompanyName)
	if err != nil {
		return toolError("%v", err), nil, nil
	}
	if len(s.SuggestedPainPoints) == 0 {
		return toolError("%v", &session.PreconditionError{
			Company:     s.CompanyName,
			MissingStep: "suggest_pain_points",
		}), nil, nil
	}

	confirmed, err := session.Resolve(selections, s.SuggestedPainPoints, "pain point")
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	matches := t.Engine.Match(ctx, confirmed, s.CompanyName)

	s, err = t.Sessions.Update(input.CompanyName, func(cs *models.CompanySession) error {
		cs.ConfirmedPainPoints = confirmed
		cs.RecommendedProjects = matches
		cs.Advance(models.StateProjectsRecommended)
		return nil
	})
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Recommended Projects for %s\n\n", s.CompanyName)
	b.WriteString("## Confirmed pain points\n\n")
	for _, p := range s.ConfirmedPainPoints {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	b.WriteString("\n## Recommendations\n\n")
	for i, m := range s.RecommendedProjects {
		fmt.Fprintf(&b, "### %d. %s (match: %d/100)\n\n", i+1, m.ProjectName, m.MatchScore)
		fmt.Fprintf(&b, "%s\n\n", m.Explanation)
		if len(m.AddressesPainPoints) > 0 {
			fmt.Fprintf(&b, "- **Addresses:** %s\n", strings.Join(m.AddressesPainPoints, "; "))
		}
		fmt.Fprintf(&b, "- **Status:** %s\n", m.DeploymentStatus)
		if m.URL != "" && m.URL != "#" {
			fmt.Fprintf(&b, "- **Link:** %s\n", m.URL)
		}
		b.WriteString("\n")
	}
	b.WriteString("**Next step:** call `select_project` with the number of the project you want an integration plan for.")

	return toolText(b.String()), nil, nil
}

// SelectProject picks one recommendation and generates an integration plan
// for it.
func (t *AnalysisTools) SelectProject(ctx context.Context, _ *mcp.CallToolRequest, input SelectProjectInput) (*mcp.CallToolResult, any, error) {
	s, err := t.Sessions.Get(input.CompanyName)
	if err != nil {
		return toolError("%v", err), nil, nil
	}
	if len(s.RecommendedProjects) == 0 {
		return toolError("%v", &session.PreconditionError{
			Company:     s.CompanyName,
			MissingStep: "confirm_pain_points",
		}), nil, nil
	}

	project, err := resolveProject(input.ProjectSelection, s.RecommendedProjects)
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	plan := t.Engine.Plan(ctx, s.CompanyInfo, project, input.UserInterest, input.CurrentSystems)

	s, err = t.Sessions.Update(input.CompanyName, func(cs *models.CompanySession) error {
		cs.SelectedProject = &project
		cs.IntegrationPlan = &plan
		cs.Advance(models.StateIntegrationDiscussed)
		return nil
	})
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Integration Plan: %s for %s\n\n", project.ProjectName, s.CompanyName)
	fmt.Fprintf(&b, "%s\n\n", project.Summary)
	writePlan(&b, plan)
	b.WriteString("Use `get_session_summary` to review the full analysis, or `ask_question` to dig into the project catalog.")

	return toolText(b.String()), nil, nil
}

// GetSessionSummary renders the current state of a company's analysis.
func (t *AnalysisTools) GetSessionSummary(_ context.Context, _ *mcp.CallToolRequest, input GetSessionSummaryInput) (*mcp.CallToolResult, any, error) {
	s, err := t.Sessions.Get(input.CompanyName)
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis Summary: %s\n\n", s.CompanyName)
	fmt.Fprintf(&b, "- **Session:** %s\n", s.ID)
	fmt.Fprintf(&b, "- **Stage:** %s\n\n", s.State)

	if len(s.ConfirmedPainPoints) > 0 {
		b.WriteString("## Confirmed pain points\n\n")
		for _, p := range s.ConfirmedPainPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	} else if len(s.SuggestedPainPoints) > 0 {
		b.WriteString("## Suggested pain points (unconfirmed)\n\n")
		for i, p := range s.SuggestedPainPoints {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p)
		}
		b.WriteString("\n")
	}

	if len(s.RecommendedProjects) > 0 {
		b.WriteString("## Recommendations\n\n")
		for i, m := range s.RecommendedProjects {
			fmt.Fprintf(&b, "%d. %s (match: %d/100, %s)\n", i+1, m.ProjectName, m.MatchScore, m.DeploymentStatus)
		}
		b.WriteString("\n")
	}

	if s.SelectedProject != nil {
		fmt.Fprintf(&b, "## Selected project\n\n%s\n\n", s.SelectedProject.ProjectName)
	}
	if s.IntegrationPlan != nil {
		writePlan(&b, *s.IntegrationPlan)
	}

	fmt.Fprintf(&b, "**Next step:** %s", nextStep(s))

	return toolText(b.String()), nil, nil
}

// ListActiveSessions lists every in-flight company analysis.
func (t *AnalysisTools) ListActiveSessions(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	sessions := t.Sessions.List()
	if len(sessions) == 0 {
		return toolText("No active analysis sessions. Start one with `start_company_analysis`."), nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Active Sessions (%d)\n\n", len(sessions))
	for _, s := range sessions {
		fmt.Fprintf(&b, "- **%s** — stage: %s, confirmed pain points: %d, recommendations: %d\n",
			s.CompanyName, s.State, len(s.ConfirmedPainPoints), len(s.RecommendedProjects))
	}
	return toolText(b.String()), nil, nil
}

// GetHelp explains the conversation flow.
func (t *AnalysisTools) GetHelp(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolText(`# Project Recommendation Assistant

Maps a company's business pain points to projects in the catalog and plans
the integration of the chosen one.

## Workflow

1. ` + "`start_company_analysis`" + ` — look up the company and open a session
2. ` + "`suggest_pain_points`" + ` — propose likely business challenges
3. ` + "`confirm_pain_points`" + ` — confirm by number and/or add your own; returns ranked project recommendations
4. ` + "`select_project`" + ` — pick a recommendation and get an integration plan

## Anytime

- ` + "`get_session_summary`" + ` — review where an analysis stands
- ` + "`list_active_sessions`" + ` — see all companies under analysis
- ` + "`ask_question`" + ` — ask anything about the project catalog (e.g. "which projects share the most pain points?")

Each step builds on the previous one; re-running a step refreshes its result
without losing later progress for other companies. Starting a new analysis
for the same company resets that company's session.`), nil, nil
}

// --- Helpers ---

// resolveProject maps a selection string onto the recommendation list: a
// numeric string is a 1-based index, anything else is matched against project
// names case-insensitively.
func resolveProject(selection string, recommended []models.ProjectMatch) (models.ProjectMatch, error) {
	trimmed := strings.TrimSpace(selection)
	if trimmed == "" {
		return models.ProjectMatch{}, fmt.Errorf("project selection is required: give a number between 1 and %d or a project name", len(recommended))
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 1 || n > len(recommended) {
			return models.ProjectMatch{}, &session.SelectionError{Index: n, Max: len(recommended), What: "project"}
		}
		return recommended[n-1], nil
	}

	for _, m := range recommended {
		if strings.EqualFold(strings.TrimSpace(m.ProjectName), trimmed) {
			return m, nil
		}
	}
	return models.ProjectMatch{}, fmt.Errorf("no recommended project named %q: give a number between 1 and %d or an exact project name", trimmed, len(recommended))
}

func writePlan(b *strings.Builder, plan models.IntegrationPlan) {
	writeSection(b, "Technical requirements", plan.TechnicalRequirements)
	if len(plan.Phases) > 0 {
		b.WriteString("## Implementation phases\n\n")
		for i, phase := range plan.Phases {
			fmt.Fprintf(b, "%d. %s\n", i+1, phase.Description)
		}
		b.WriteString("\n")
	}
	writeSection(b, "Resource needs", plan.ResourceNeeds)
	writeSection(b, "Risks and mitigation", plan.Risks)
	writeSection(b, "Success metrics", plan.SuccessMetrics)
	writeSection(b, "Next steps", plan.NextSteps)
	if plan.PilotSuggestion != "" {
		fmt.Fprintf(b, "## Pilot suggestion\n\n%s\n\n", plan.PilotSuggestion)
	}
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

// nextStep names the tool that advances the session from its current state.
func nextStep(s models.CompanySession) string {
	switch s.State {
	case models.StateCompanySearched:
		return "call `suggest_pain_points`"
	case models.StatePainPointsSuggested:
		return "call `confirm_pain_points` with the numbers that apply"
	case models.StatePainPointsConfirmed, models.StateProjectsRecommended:
		return "call `select_project` to get an integration plan"
	case models.StateProjectSelected, models.StateIntegrationDiscussed:
		return "the analysis is complete; use `ask_question` to explore further"
	}
	return "call `start_company_analysis`"
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
