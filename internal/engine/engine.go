// Package engine implements the core of the recommendation assistant: pain
// point suggestion, project matching with its fallback cascade, integration
// plan generation, and graph question answering. Every operation here
// degrades to a usable result instead of surfacing external-service
// failures; only programmer errors propagate.
package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/catalog"
	"github.com/Aytaditya/pwc-hackathon/internal/llm"
	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

// GraphQuerier is the slice of the knowledge store the engine needs beyond
// the catalog source: raw Cypher for the QA pipeline and the ranked fallback
// query. May be absent (nil) when the store is unreachable.
type GraphQuerier interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
	TopByPainPointCount(ctx context.Context, limit int) ([]models.CatalogProject, error)
}

// Engine wires the LLM, the catalog source, and (optionally) the knowledge
// store into the conversation operations.
type Engine struct {
	llm    llm.Client
	source catalog.Source
	graph  GraphQuerier
	log    *zap.Logger
}

// New creates an engine. graph may be nil; the engine then runs on the
// catalog source and LLM alone, with the QA pipeline degraded to general
// answers.
func New(client llm.Client, source catalog.Source, graph GraphQuerier, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{llm: client, source: source, graph: graph, log: log.Named("engine")}
}
