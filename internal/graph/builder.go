package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/catalog"
	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

// constraints declares uniqueness for every node label in the schema.
var constraints = []string{
	"CREATE CONSTRAINT project_id IF NOT EXISTS FOR (p:Project) REQUIRE p.id IS UNIQUE",
	"CREATE CONSTRAINT pain_point_name IF NOT EXISTS FOR (pp:PainPoint) REQUIRE pp.name IS UNIQUE",
	"CREATE CONSTRAINT capability_name IF NOT EXISTS FOR (c:Capability) REQUIRE c.name IS UNIQUE",
	"CREATE CONSTRAINT industry_name IF NOT EXISTS FOR (i:Industry) REQUIRE i.name IS UNIQUE",
	"CREATE CONSTRAINT regulation_name IF NOT EXISTS FOR (r:Regulation) REQUIRE r.name IS UNIQUE",
	"CREATE CONSTRAINT technology_name IF NOT EXISTS FOR (t:Technology) REQUIRE t.name IS UNIQUE",
	"CREATE CONSTRAINT domain_name IF NOT EXISTS FOR (d:Domain) REQUIRE d.name IS UNIQUE",
}

// attributeEdge describes one catalog attribute and the node label / edge
// type it maps to.
type attributeEdge struct {
	label    string
	relation string
}

// similarityEdge describes one SHARES_* co-occurrence relationship derived
// from a base edge type.
var similarityEdges = []struct {
	base     string
	label    string
	relation string
}{
	{"ADDRESSES", "PainPoint", "SHARES_PAIN_POINTS"},
	{"HAS_CAPABILITY", "Capability", "SHARES_CAPABILITIES"},
	{"TARGETS", "Industry", "SHARES_INDUSTRIES"},
	{"USES_TECHNOLOGY", "Technology", "SHARES_TECHNOLOGIES"},
	{"BELONGS_TO", "Domain", "SHARES_DOMAINS"},
}

// Build wipes the database and rebuilds the full knowledge graph from the
// catalog: nodes, attribute edges, co-occurrence similarity edges, and
// popularity aggregates.
func (s *Store) Build(ctx context.Context, projects []models.CatalogProject) error {
	s.log.Info("building knowledge graph", zap.Int("projects", len(projects)))

	if _, err := s.Run(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
		return fmt.Errorf("clear database: %w", err)
	}

	for _, c := range constraints {
		if _, err := s.Run(ctx, c, nil); err != nil {
			// Constraint syntax varies across server versions; an existing
			// equivalent constraint is not fatal.
			s.log.Warn("constraint not created", zap.Error(err))
		}
	}

	for i, p := range projects {
		s.log.Debug("merging project",
			zap.String("id", p.ID),
			zap.Int("n", i+1),
			zap.Int("of", len(projects)))
		if err := s.mergeProject(ctx, p); err != nil {
			return fmt.Errorf("merge project %q: %w", p.ID, err)
		}
	}

	if err := s.createSimilarityEdges(ctx); err != nil {
		return err
	}
	if err := s.setPopularity(ctx); err != nil {
		return err
	}

	s.logStats(ctx)
	return nil
}

func (s *Store) mergeProject(ctx context.Context, p models.CatalogProject) error {
	_, err := s.Run(ctx, `
		MERGE (p:Project {id: $id})
		SET p.name = $name,
		    p.summary = $summary,
		    p.url = $url,
		    p.deployment_status = $deployment_status`,
		map[string]any{
			"id":                p.ID,
			"name":              p.Name,
			"summary":           p.Summary,
			"url":               p.URL,
			"deployment_status": string(p.Deployment()),
		})
	if err != nil {
		return err
	}

	attach := func(edge attributeEdge, names []string) error {
		for _, name := range names {
			query := fmt.Sprintf(`
				MERGE (n:%s {name: $name})
				WITH n
				MATCH (p:Project {id: $project_id})
				MERGE (p)-[:%s]->(n)`, edge.label, edge.relation)
			if _, err := s.Run(ctx, query, map[string]any{
				"name":       name,
				"project_id": p.ID,
			}); err != nil {
				return fmt.Errorf("attach %s %q: %w", edge.label, name, err)
			}
		}
		return nil
	}

	if err := attach(attributeEdge{"PainPoint", "ADDRESSES"}, p.PainPoints); err != nil {
		return err
	}
	if err := attach(attributeEdge{"Capability", "HAS_CAPABILITY"}, p.Capabilities); err != nil {
		return err
	}
	if err := attach(attributeEdge{"Industry", "TARGETS"}, p.Industries); err != nil {
		return err
	}

	var regulations []string
	for _, r := range p.Regulations {
		if r != "Not Applicable" {
			regulations = append(regulations, r)
		}
	}
	if err := attach(attributeEdge{"Regulation", "COMPLIES_WITH"}, regulations); err != nil {
		return err
	}
	if err := attach(attributeEdge{"Technology", "USES_TECHNOLOGY"}, catalog.Technologies(p.Summary)); err != nil {
		return err
	}
	domains := catalog.Domains(p.Industries, p.Capabilities, p.PainPoints)
	return attach(attributeEdge{"Domain", "BELONGS_TO"}, domains)
}

func (s *Store) createSimilarityEdges(ctx context.Context) error {
	s.log.Info("creating similarity relationships")

	for _, e := range similarityEdges {
		query := fmt.Sprintf(`
			MATCH (p1:Project)-[:%[1]s]->(n:%[2]s)<-[:%[1]s]-(p2:Project)
			WHERE p1.id < p2.id
			WITH p1, p2, COUNT(n) AS shared
			WHERE shared > 0
			MERGE (p1)-[r:%[3]s]-(p2)
			SET r.count = shared`, e.base, e.label, e.relation)
		if _, err := s.Run(ctx, query, nil); err != nil {
			return fmt.Errorf("create %s edges: %w", e.relation, err)
		}
	}
	return nil
}

func (s *Store) setPopularity(ctx context.Context) error {
	s.log.Info("setting popularity aggregates")

	queries := []string{
		`MATCH (pp:PainPoint)<-[:ADDRESSES]-(p:Project)
		 WITH pp, COUNT(p) AS project_count
		 WHERE project_count > 1
		 SET pp.popularity = project_count`,
		`MATCH (c:Capability)<-[:HAS_CAPABILITY]-(p:Project)
		 WITH c, COUNT(p) AS project_count
		 WHERE project_count > 1
		 SET c.popularity = project_count`,
		`MATCH (i:Industry)<-[:TARGETS]-(p:Project)
		 WITH i, COUNT(p) AS project_count
		 SET i.popularity = project_count`,
	}
	for _, q := range queries {
		if _, err := s.Run(ctx, q, nil); err != nil {
			return fmt.Errorf("set popularity: %w", err)
		}
	}
	return nil
}

func (s *Store) logStats(ctx context.Context) {
	stats := []struct {
		name  string
		query string
	}{
		{"projects", "MATCH (p:Project) RETURN count(p) AS count"},
		{"pain_points", "MATCH (pp:PainPoint) RETURN count(pp) AS count"},
		{"capabilities", "MATCH (c:Capability) RETURN count(c) AS count"},
		{"industries", "MATCH (i:Industry) RETURN count(i) AS count"},
		{"technologies", "MATCH (t:Technology) RETURN count(t) AS count"},
		{"domains", "MATCH (d:Domain) RETURN count(d) AS count"},
		{"regulations", "MATCH (r:Regulation) RETURN count(r) AS count"},
		{"shared_pain_point_edges", "MATCH ()-[r:SHARES_PAIN_POINTS]-() RETURN count(r) AS count"},
	}

	fields := make([]zap.Field, 0, len(stats))
	for _, st := range stats {
		rows, err := s.Run(ctx, st.query, nil)
		if err != nil || len(rows) == 0 {
			continue
		}
		if n, ok := rows[0]["count"].(int64); ok {
			fields = append(fields, zap.Int64(st.name, n))
		}
	}
	s.log.Info("graph statistics", fields...)
}
