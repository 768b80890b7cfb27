package engine

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/catalog"
	"github.com/Aytaditya/pwc-hackathon/internal/llm"
	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

// scriptedLLM returns its responses in order; after the script runs out it
// keeps returning the last entry. A non-nil err fails every call.
type scriptedLLM struct {
	responses []string
	err       error
	prompts   []string
}

func (s *scriptedLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	s.prompts = append(s.prompts, req.Prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", llm.ErrEmptyResponse
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

type failingSource struct{ err error }

func (f failingSource) Catalog(_ context.Context) ([]models.CatalogProject, error) {
	return nil, f.err
}

type fakeGraph struct {
	top    []models.CatalogProject
	topErr error
	rows   []map[string]any
	runErr error
	cyphers []string
}

func (f *fakeGraph) Run(_ context.Context, cypher string, _ map[string]any) ([]map[string]any, error) {
	f.cyphers = append(f.cyphers, cypher)
	return f.rows, f.runErr
}

func (f *fakeGraph) TopByPainPointCount(_ context.Context, limit int) ([]models.CatalogProject, error) {
	if f.topErr != nil {
		return nil, f.topErr
	}
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func newTestEngine(t *testing.T, client llm.Client, source catalog.Source, g GraphQuerier) *Engine {
	t.Helper()
	return New(client, source, g, zap.NewNop())
}

func testProjects() []models.CatalogProject {
	return []models.CatalogProject{
		{
			ID:         "talk-to-data",
			Name:       "Talk to Data",
			Summary:    "Conversational analytics over CSV data",
			URL:        "https://example.com/talk-to-data",
			PainPoints: []string{"Manual data entry", "Slow reporting", "Poor data analytics"},
		},
		{
			ID:         "cybersecure-genai",
			Name:       "CyberSecure GenAI",
			Summary:    "Prompt injection detection for GenAI apps",
			URL:        "Not Deployed",
			PainPoints: []string{"Prompt injection attacks"},
		},
		{
			ID:         "hr-ai-studio",
			Name:       "HR AI Studio",
			Summary:    "AI hiring assistant",
			URL:        "https://example.com/hr",
			PainPoints: []string{"Slow recruitment", "Manual data entry"},
		},
	}
}
