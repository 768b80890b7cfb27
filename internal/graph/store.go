// Package graph is the Neo4j knowledge store: it builds the labeled
// property graph from the project catalog and serves the read queries the
// recommendation engine and QA pipeline run against it.
package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

// Config holds the Neo4j connection settings.
type Config struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

// DefaultConfig matches the original local deployment.
func DefaultConfig() Config {
	return Config{
		URL:      "bolt://localhost:7687",
		Username: "neo4j",
		Password: "test1234",
		Timeout:  10 * time.Second,
	}
}

// Store wraps a Neo4j driver with the queries this system needs.
type Store struct {
	driver  neo4j.DriverWithContext
	timeout time.Duration
	log     *zap.Logger
}

// Open connects to Neo4j and verifies connectivity.
func Open(ctx context.Context, cfg Config, log *zap.Logger) (*Store, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URL, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	return &Store{driver: driver, timeout: cfg.Timeout, log: log.Named("graph")}, nil
}

// Close shuts down the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Run executes a Cypher statement and returns the rows as ordered key/value
// maps. Used by the builder and by the natural-language QA pipeline.
func (s *Store) Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}

	var rows []map[string]any
	for result.Next(ctx) {
		record := result.Record()
		row := make(map[string]any, len(record.Keys))
		for _, key := range record.Keys {
			if v, ok := record.Get(key); ok {
				row[key] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, result.Err()
}

// Catalog loads the full project catalog from the graph, with each project's
// pain points, capabilities, industries, and regulations collected. It
// implements catalog.Source.
func (s *Store) Catalog(ctx context.Context) ([]models.CatalogProject, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Project)
		RETURN p.id AS id, p.name AS name, p.summary AS summary, p.url AS url,
		       [(p)-[:ADDRESSES]->(pp:PainPoint) | pp.name] AS pain_points,
		       [(p)-[:HAS_CAPABILITY]->(c:Capability) | c.name] AS capabilities,
		       [(p)-[:TARGETS]->(i:Industry) | i.name] AS industries,
		       [(p)-[:COMPLIES_WITH]->(r:Regulation) | r.name] AS regulations
		ORDER BY p.id`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var projects []models.CatalogProject
	for result.Next(ctx) {
		record := result.Record()
		projects = append(projects, models.CatalogProject{
			ID:           recordString(record, "id"),
			Name:         recordString(record, "name"),
			Summary:      recordString(record, "summary"),
			URL:          recordString(record, "url"),
			PainPoints:   recordStrings(record, "pain_points"),
			Capabilities: recordStrings(record, "capabilities"),
			Industries:   recordStrings(record, "industries"),
			Regulations:  recordStrings(record, "regulations"),
		})
	}
	return projects, result.Err()
}

// TopByPainPointCount returns the projects that address the most pain
// points. This backs the generic-recommendation fallback tier.
func (s *Store) TopByPainPointCount(ctx context.Context, limit int) ([]models.CatalogProject, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Project)-[:ADDRESSES]->(pp:PainPoint)
		WITH p, COUNT(pp) AS pain_point_count
		ORDER BY pain_point_count DESC
		LIMIT $limit
		RETURN p.id AS id, p.name AS name, p.summary AS summary, p.url AS url,
		       [(p)-[:ADDRESSES]->(pp2:PainPoint) | pp2.name] AS pain_points`

	result, err := session.Run(ctx, query, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("load fallback projects: %w", err)
	}

	var projects []models.CatalogProject
	for result.Next(ctx) {
		record := result.Record()
		projects = append(projects, models.CatalogProject{
			ID:         recordString(record, "id"),
			Name:       recordString(record, "name"),
			Summary:    recordString(record, "summary"),
			URL:        recordString(record, "url"),
			PainPoints: recordStrings(record, "pain_points"),
		})
	}
	return projects, result.Err()
}

func recordString(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recordStrings(record *neo4j.Record, key string) []string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
