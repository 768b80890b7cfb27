package models

// ConversationState tracks where a company session is in the analysis flow.
type ConversationState string

// Session states, in flow order. Transitions only move forward; a new
// start_company_analysis call replaces the session entirely.
const (
	StateInitial              ConversationState = "initial"
	StateCompanySearched      ConversationState = "company_searched"
	StatePainPointsSuggested  ConversationState = "pain_points_suggested"
	StatePainPointsConfirmed  ConversationState = "pain_points_confirmed"
	StateProjectsRecommended  ConversationState = "projects_recommended"
	StateProjectSelected      ConversationState = "project_selected"
	StateIntegrationDiscussed ConversationState = "integration_discussed"
)

func (s ConversationState) rank() int {
	switch s {
	case StateInitial:
		return 0
	case StateCompanySearched:
		return 1
	case StatePainPointsSuggested:
		return 2
	case StatePainPointsConfirmed:
		return 3
	case StateProjectsRecommended:
		return 4
	case StateProjectSelected:
		return 5
	case StateIntegrationDiscussed:
		return 6
	}
	return -1
}

// Before reports whether s comes strictly before other in the flow.
func (s ConversationState) Before(other ConversationState) bool {
	return s.rank() < other.rank()
}

// DeploymentStatus describes whether a catalog project is live.
type DeploymentStatus string

const (
	StatusDeployed    DeploymentStatus = "Deployed"
	StatusNotDeployed DeploymentStatus = "Not Deployed"
	StatusAvailable   DeploymentStatus = "Available"
)

// CatalogProject is one entry of the reference catalog. Immutable input
// data, sourced from the knowledge graph or a catalog file.
type CatalogProject struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Summary      string   `json:"summary"`
	URL          string   `json:"url"`
	PainPoints   []string `json:"pain_points"`
	Capabilities []string `json:"capabilities"`
	Industries   []string `json:"industries"`
	Regulations  []string `json:"regulations"`
}

// Deployment derives the deployment status from the project URL, the same
// way the graph builder stamps it onto Project nodes.
func (p CatalogProject) Deployment() DeploymentStatus {
	if p.URL == "Not Deployed" {
		return StatusNotDeployed
	}
	return StatusDeployed
}

// ProjectMatch is a single recommendation produced by the matching engine.
// Created fresh on every match run and never mutated afterwards.
type ProjectMatch struct {
	ProjectID           string   `json:"project_id"`
	ProjectName         string   `json:"project_name"`
	MatchScore          int      `json:"match_score"`
	Explanation         string   `json:"explanation"`
	AddressesPainPoints []string `json:"addresses_pain_points"`
	Summary             string   `json:"summary"`
	URL                 string   `json:"url,omitempty"`
	DeploymentStatus    string   `json:"deployment_status"`
	Technologies        []string `json:"technologies,omitempty"`
	EstimatedTimeline   string   `json:"estimated_timeline,omitempty"`
}

// SearchResult is one organic web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link,omitempty"`
}

// KnowledgePanel holds the structured knowledge-graph box of a search page.
type KnowledgePanel struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// CompanyInfo is the company profile assembled from web search.
type CompanyInfo struct {
	Name           string         `json:"name"`
	Results        []SearchResult `json:"search_results"`
	KnowledgePanel KnowledgePanel `json:"knowledge_graph"`
	AnswerBox      string         `json:"answer_box,omitempty"`
	SearchError    string         `json:"error,omitempty"`
}

// IntegrationPlan is the structured implementation plan for a selected project.
type IntegrationPlan struct {
	TechnicalRequirements []string `json:"technical_requirements"`
	Phases                Phases   `json:"implementation_phases"`
	ResourceNeeds         []string `json:"resource_needs"`
	Risks                 []string `json:"risks_and_mitigation"`
	SuccessMetrics        []string `json:"success_metrics"`
	NextSteps             []string `json:"next_steps"`
	PilotSuggestion       string   `json:"pilot_suggestion,omitempty"`
}

// CompanySession is the per-company conversation record. It lives in memory
// for the process lifetime and is owned by the session store; all mutation
// goes through the store.
type CompanySession struct {
	ID                  string
	CompanyName         string
	CompanyInfo         CompanyInfo
	State               ConversationState
	SuggestedPainPoints []string
	ConfirmedPainPoints []string
	RecommendedProjects []ProjectMatch
	SelectedProject     *ProjectMatch
	IntegrationPlan     *IntegrationPlan
}

// Advance moves the session state forward. A transition that would regress
// the state is ignored; re-running a step overwrites fields but never moves
// the session backwards.
func (s *CompanySession) Advance(to ConversationState) {
	if s.State.Before(to) {
		s.State = to
	}
}
