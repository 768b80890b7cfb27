package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

func TestDefaultCatalogLoads(t *testing.T) {
	projects, err := Default()
	require.NoError(t, err)
	require.Len(t, projects, 7)

	seen := make(map[string]bool)
	for _, p := range projects {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Summary)
		assert.False(t, seen[p.ID], "duplicate project id %s", p.ID)
		seen[p.ID] = true
	}
	assert.True(t, seen["talk-to-data"])
	assert.True(t, seen["cybersecure-genai"])
}

func TestLoadRejectsMissingIdentity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Nameless"}]`), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "missing id or name")
}

func TestStaticImplementsSource(t *testing.T) {
	var src Source = Static{{ID: "x", Name: "X"}}
	projects, err := src.Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestPainPointCountsCaseInsensitive(t *testing.T) {
	projects := []models.CatalogProject{
		{ID: "a", Name: "A", PainPoints: []string{"Manual Data Entry"}},
		{ID: "b", Name: "B", PainPoints: []string{"manual data entry", "Churn"}},
	}
	counts := PainPointCounts(projects)
	assert.Equal(t, 2, counts["manual data entry"])
	assert.Equal(t, 1, counts["churn"])
}

func TestProjectWeightSumsPopularity(t *testing.T) {
	projects := []models.CatalogProject{
		{ID: "a", Name: "A", PainPoints: []string{"Shared", "Unique A"}},
		{ID: "b", Name: "B", PainPoints: []string{"Shared"}},
	}
	counts := PainPointCounts(projects)
	assert.Equal(t, 3, ProjectWeight(projects[0], counts))
	assert.Equal(t, 2, ProjectWeight(projects[1], counts))
}

func TestTechnologiesFromSummary(t *testing.T) {
	techs := Technologies("A GenAI chatbot with LLM-powered analytics on Azure")
	assert.Contains(t, techs, "GenAI")
	assert.Contains(t, techs, "LLM")
	assert.Contains(t, techs, "Chatbot")
	assert.Contains(t, techs, "Azure")
	assert.Contains(t, techs, "Analytics")
}

func TestDomainsCategorization(t *testing.T) {
	domains := Domains(
		[]string{"Cybersecurity"},
		[]string{"Prompt Injection detection"},
		[]string{"Security gaps"},
	)
	assert.Contains(t, domains, "Security")

	domains = Domains([]string{"Retail"}, []string{"Sales automation"}, nil)
	assert.Contains(t, domains, "Business Operations")
}

func TestDomainsFallbackToGeneral(t *testing.T) {
	domains := Domains([]string{"Floristry"}, nil, []string{"wilting flowers"})
	assert.Equal(t, []string{"General"}, domains)
}

func TestDeploymentDerivedFromURL(t *testing.T) {
	projects, err := Default()
	require.NoError(t, err)

	for _, p := range projects {
		if p.URL == "Not Deployed" {
			assert.Equal(t, models.StatusNotDeployed, p.Deployment(), p.ID)
		} else {
			assert.Equal(t, models.StatusDeployed, p.Deployment(), p.ID)
		}
	}
}
