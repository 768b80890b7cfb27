package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/catalog"
	"github.com/Aytaditya/pwc-hackathon/internal/llm"
	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

const fallbackProjectCount = 3

// Match ranks catalog projects against the confirmed pain points. The result
// is never empty: semantic ranking failures degrade to the most broadly
// applicable catalog projects (score 30), and an empty or unreachable
// catalog degrades to the single hardcoded automation suggestion (score 20).
func (e *Engine) Match(ctx context.Context, painPoints []string, companyName string) []models.ProjectMatch {
	projects, err := e.source.Catalog(ctx)
	if err != nil {
		e.log.Warn("catalog unavailable, using fallback recommendations",
			zap.String("company", companyName),
			zap.Error(err))
		return e.fallbackMatches(ctx, companyName, nil)
	}
	if len(projects) == 0 {
		return []models.ProjectMatch{genericMatch()}
	}

	counts := catalog.PainPointCounts(projects)

	// Candidates from the lexical pre-filter keep the ranking prompt small;
	// an inconclusive pre-filter ranks the whole catalog instead.
	pool := prefilter(painPoints, projects)
	if len(pool) == 0 {
		pool = projects
	}

	req := llm.Request{
		Prompt:      matchPrompt(painPoints, pool, companyName),
		MaxTokens:   800,
		Temperature: 0.3,
	}

	validate := func(matches []models.ProjectMatch) error {
		if len(matches) == 0 {
			return fmt.Errorf("empty match list")
		}
		return nil
	}

	matches, _ := llm.StructuredCall(ctx, e.llm, req, validate,
		func(string) ([]models.ProjectMatch, bool) {
			e.log.Warn("semantic ranking failed, using fallback recommendations",
				zap.String("company", companyName))
			return e.fallbackMatches(ctx, companyName, projects), true
		},
	)

	clampScores(matches)
	orderMatches(matches, projects, counts)
	return matches
}

// prefilter selects projects with at least one containment overlap between a
// confirmed pain point and a cataloged one, in either direction,
// case-insensitively.
func prefilter(painPoints []string, projects []models.CatalogProject) []models.CatalogProject {
	var candidates []models.CatalogProject
	for _, p := range projects {
		if overlaps(painPoints, p.PainPoints) {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

func overlaps(confirmed, cataloged []string) bool {
	for _, c := range confirmed {
		cl := strings.ToLower(strings.TrimSpace(c))
		if cl == "" {
			continue
		}
		for _, k := range cataloged {
			kl := strings.ToLower(k)
			if strings.Contains(cl, kl) || strings.Contains(kl, cl) {
				return true
			}
		}
	}
	return false
}

func matchPrompt(painPoints []string, pool []models.CatalogProject, companyName string) string {
	pains, _ := json.MarshalIndent(painPoints, "", "  ")
	projects, _ := json.MarshalIndent(pool, "", "  ")

	return fmt.Sprintf(`I have identified these pain points for %s:
%s

Here are available projects that might help:
%s

Analyze and return the top 3-5 projects that best match these pain points.
IMPORTANT: Even if the match is not perfect, provide at least 1 project suggestion.
If direct matches are not available, pick projects that could be adapted or are generally useful.

For each project provide a match score (0-100), an explanation of why it
matches or could be adapted, and the specific pain points it addresses.

Return a JSON array with this structure:
[
  {
    "project_id": "project-id",
    "project_name": "Project Name",
    "match_score": 85,
    "explanation": "Why this project matches...",
    "addresses_pain_points": ["pain point 1", "pain point 2"],
    "summary": "project summary",
    "url": "project url",
    "deployment_status": "status"
  }
]`, companyName, pains, projects)
}

func clampScores(matches []models.ProjectMatch) {
	for i := range matches {
		if matches[i].MatchScore < 0 {
			matches[i].MatchScore = 0
		}
		if matches[i].MatchScore > 100 {
			matches[i].MatchScore = 100
		}
	}
}

// orderMatches sorts by match score descending, breaking ties by cataloged
// popularity descending, then by catalog insertion order.
func orderMatches(matches []models.ProjectMatch, projects []models.CatalogProject, counts map[string]int) {
	position := make(map[string]int, len(projects))
	weight := make(map[string]int, len(projects))
	for i, p := range projects {
		position[p.ID] = i
		weight[p.ID] = catalog.ProjectWeight(p, counts)
	}

	pos := func(m models.ProjectMatch) int {
		if i, ok := position[m.ProjectID]; ok {
			return i
		}
		return len(projects)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return pos(matches[i]) < pos(matches[j])
	})
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		return weight[matches[i].ProjectID] > weight[matches[j].ProjectID]
	})
}

// fallbackMatches is the generic-recommendation tier: the projects that
// address the most pain points, scored at a fixed low 30. The project list
// comes from the already-loaded catalog when available, otherwise from the
// knowledge store; if neither works the hardcoded floor is returned.
func (e *Engine) fallbackMatches(ctx context.Context, companyName string, projects []models.CatalogProject) []models.ProjectMatch {
	if projects == nil && e.graph != nil {
		top, err := e.graph.TopByPainPointCount(ctx, fallbackProjectCount)
		if err != nil {
			e.log.Warn("fallback query failed", zap.Error(err))
		} else {
			projects = top
		}
	}
	if len(projects) == 0 {
		return []models.ProjectMatch{genericMatch()}
	}

	ranked := make([]models.CatalogProject, len(projects))
	copy(ranked, projects)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].PainPoints) > len(ranked[j].PainPoints)
	})
	if len(ranked) > fallbackProjectCount {
		ranked = ranked[:fallbackProjectCount]
	}

	company := companyName
	if company == "" {
		company = "yours"
	}

	matches := make([]models.ProjectMatch, 0, len(ranked))
	for _, p := range ranked {
		addressed := p.PainPoints
		if len(addressed) > 3 {
			addressed = addressed[:3]
		}
		matches = append(matches, models.ProjectMatch{
			ProjectID:  p.ID,
			ProjectName: p.Name,
			MatchScore: 30,
			Explanation: fmt.Sprintf(
				"General recommendation - this project addresses common business challenges that many companies like %s face.", company),
			AddressesPainPoints: addressed,
			Summary:             p.Summary,
			URL:                 p.URL,
			DeploymentStatus:    string(p.Deployment()),
		})
	}
	return matches
}
