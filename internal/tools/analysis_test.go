package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/catalog"
	"github.com/Aytaditya/pwc-hackathon/internal/engine"
	"github.com/Aytaditya/pwc-hackathon/internal/llm"
	"github.com/Aytaditya/pwc-hackathon/internal/models"
	"github.com/Aytaditya/pwc-hackathon/internal/session"
)

type stubLLM struct{ text string }

func (s stubLLM) Complete(_ context.Context, _ llm.Request) (string, error) {
	return s.text, nil
}

type stubSearch struct {
	info models.CompanyInfo
	err  error
}

func (s stubSearch) Lookup(_ context.Context, name string) (models.CompanyInfo, error) {
	if s.err != nil {
		return models.CompanyInfo{Name: name}, s.err
	}
	info := s.info
	info.Name = name
	return info, nil
}

func newAnalysisTools(t *testing.T, client llm.Client, searcher stubSearch) *AnalysisTools {
	t.Helper()
	return &AnalysisTools{
		Sessions: session.NewStore(),
		Engine:   engine.New(client, catalog.Static(nil), nil, zap.NewNop()),
		Search:   searcher,
		Log:      zap.NewNop(),
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", res.Content[0])
	}
	return tc.Text
}

func TestStartCompanyAnalysisRequiresName(t *testing.T) {
	at := newAnalysisTools(t, stubLLM{}, stubSearch{})

	res, _, err := at.StartCompanyAnalysis(context.Background(), nil, StartCompanyAnalysisInput{CompanyName: "   "})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("blank company name should be a tool error")
	}
}

func TestStartCompanyAnalysisSurvivesSearchFailure(t *testing.T) {
	at := newAnalysisTools(t, stubLLM{}, stubSearch{err: context.DeadlineExceeded})

	res, _, err := at.StartCompanyAnalysis(context.Background(), nil, StartCompanyAnalysisInput{CompanyName: "Acme"})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("search failure must not fail the tool: %s", resultText(t, res))
	}

	s, err := at.Sessions.Get("Acme")
	if err != nil {
		t.Fatalf("session should exist after failed search: %v", err)
	}
	if s.CompanyInfo.SearchError == "" {
		t.Error("search failure should be recorded on the session")
	}
}

func TestSuggestBeforeStartIsActionableError(t *testing.T) {
	at := newAnalysisTools(t, stubLLM{}, stubSearch{})

	res, _, _ := at.SuggestPainPoints(context.Background(), nil, SuggestPainPointsInput{CompanyName: "Acme"})
	if !res.IsError {
		t.Fatal("expected error before start_company_analysis")
	}
	if !strings.Contains(resultText(t, res), "start_company_analysis") {
		t.Errorf("error should name the missing step, got %q", resultText(t, res))
	}
}

func TestConfirmOutOfRangeLeavesSessionUntouched(t *testing.T) {
	at := newAnalysisTools(t, stubLLM{text: `["Manual data entry", "Slow reporting"]`}, stubSearch{})

	at.StartCompanyAnalysis(context.Background(), nil, StartCompanyAnalysisInput{CompanyName: "Acme"})
	at.SuggestPainPoints(context.Background(), nil, SuggestPainPointsInput{CompanyName: "Acme"})

	res, _, _ := at.ConfirmPainPoints(context.Background(), nil, ConfirmPainPointsInput{
		CompanyName:        "Acme",
		SelectedPainPoints: []any{float64(1), float64(99)},
	})
	if !res.IsError {
		t.Fatal("out-of-range selection should be a tool error")
	}
	if !strings.Contains(resultText(t, res), "between 1 and 2") {
		t.Errorf("error should state the valid range, got %q", resultText(t, res))
	}

	s, _ := at.Sessions.Get("Acme")
	if len(s.ConfirmedPainPoints) != 0 {
		t.Error("failed confirmation must not persist partial results")
	}
	if s.State != models.StatePainPointsSuggested {
		t.Errorf("state = %q, want unchanged %q", s.State, models.StatePainPointsSuggested)
	}
}

func TestResolveProjectByNumberAndName(t *testing.T) {
	recommended := []models.ProjectMatch{
		{ProjectID: "a", ProjectName: "Talk to Data"},
		{ProjectID: "b", ProjectName: "HR AI Studio"},
	}

	got, err := resolveProject("2", recommended)
	if err != nil {
		t.Fatalf("numeric selection: %v", err)
	}
	if got.ProjectID != "b" {
		t.Errorf("selection 2 = %q, want b", got.ProjectID)
	}

	got, err = resolveProject("talk to data", recommended)
	if err != nil {
		t.Fatalf("name selection: %v", err)
	}
	if got.ProjectID != "a" {
		t.Errorf("name selection = %q, want a", got.ProjectID)
	}

	if _, err := resolveProject("0", recommended); !session.IsInvalidSelection(err) {
		t.Errorf("index 0 should be a SelectionError, got %v", err)
	}
	if _, err := resolveProject("99", recommended); !session.IsInvalidSelection(err) {
		t.Errorf("index 99 should be a SelectionError, got %v", err)
	}
	if _, err := resolveProject("Unknown Project", recommended); err == nil {
		t.Error("unknown name should be rejected")
	}
	if _, err := resolveProject("", recommended); err == nil {
		t.Error("empty selection should be rejected")
	}
}

func TestNextStepCoversEveryState(t *testing.T) {
	states := []models.ConversationState{
		models.StateInitial,
		models.StateCompanySearched,
		models.StatePainPointsSuggested,
		models.StatePainPointsConfirmed,
		models.StateProjectsRecommended,
		models.StateProjectSelected,
		models.StateIntegrationDiscussed,
	}
	for _, st := range states {
		if nextStep(models.CompanySession{State: st}) == "" {
			t.Errorf("no next step for state %q", st)
		}
	}
}
