// Package catalog handles the reference collection of projects available
// for recommendation. The catalog is pluggable input: it can come from a
// JSON file, from the knowledge graph, or from the embedded sample shipped
// with the repository.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "embed"

	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

//go:embed sample_catalog.json
var sampleCatalog []byte

// Source supplies the catalog to the matching engine. The graph store and
// the static in-memory catalog both implement it.
type Source interface {
	Catalog(ctx context.Context) ([]models.CatalogProject, error)
}

// Static is a fixed in-memory Source.
type Static []models.CatalogProject

// Catalog returns the fixed project list.
func (s Static) Catalog(_ context.Context) ([]models.CatalogProject, error) {
	return s, nil
}

// Default returns the embedded sample catalog.
func Default() ([]models.CatalogProject, error) {
	return decode(sampleCatalog)
}

// Load reads a catalog from a JSON file.
func Load(path string) ([]models.CatalogProject, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return decode(raw)
}

func decode(raw []byte) ([]models.CatalogProject, error) {
	var projects []models.CatalogProject
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, p := range projects {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id or name", i)
		}
	}
	return projects, nil
}

// PainPointCounts returns, for each cataloged pain point (lowercased), the
// number of projects that address it. This is the popularity measure the
// graph builder stamps onto PainPoint nodes and the ranking tie-breaker the
// matching engine uses.
func PainPointCounts(projects []models.CatalogProject) map[string]int {
	counts := make(map[string]int)
	for _, p := range projects {
		for _, pp := range p.PainPoints {
			counts[strings.ToLower(pp)]++
		}
	}
	return counts
}

// ProjectWeight sums the popularity of a project's cataloged pain points.
func ProjectWeight(p models.CatalogProject, counts map[string]int) int {
	total := 0
	for _, pp := range p.PainPoints {
		total += counts[strings.ToLower(pp)]
	}
	return total
}
