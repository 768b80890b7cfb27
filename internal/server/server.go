// Package server assembles the MCP server: it wires the session store,
// engine, and search client into the tool handlers and registers every tool
// and resource. No business logic lives here.
package server

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/engine"
	"github.com/Aytaditya/pwc-hackathon/internal/search"
	"github.com/Aytaditya/pwc-hackathon/internal/session"
	"github.com/Aytaditya/pwc-hackathon/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "0.1.0"

// Deps holds everything the server needs. GraphConnected and CatalogSize
// feed the status resource; the server itself never touches the graph.
type Deps struct {
	Sessions       *session.Store
	Engine         *engine.Engine
	Search         search.Searcher
	Log            *zap.Logger
	GraphConnected bool
	CatalogSize    int
}

// New creates a fully configured MCP server with all tools registered.
func New(deps Deps) *mcp.Server {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	at := &tools.AnalysisTools{
		Sessions: deps.Sessions,
		Engine:   deps.Engine,
		Search:   deps.Search,
		Log:      deps.Log.Named("tools"),
	}
	qt := &tools.QueryTools{
		Sessions: deps.Sessions,
		Engine:   deps.Engine,
		Log:      deps.Log.Named("tools"),
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "project-recommender",
		Version: Version,
	}, nil)

	// Conversation flow tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "start_company_analysis",
		Description: "Start analyzing a company: web-search its profile and open an analysis session",
	}, at.StartCompanyAnalysis)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "suggest_pain_points",
		Description: "Suggest likely business pain points for a company under analysis",
	}, at.SuggestPainPoints)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "confirm_pain_points",
		Description: "Confirm pain points (by number and/or custom text) and get ranked project recommendations",
	}, at.ConfirmPainPoints)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "select_project",
		Description: "Select a recommended project and generate an integration plan for it",
	}, at.SelectProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_session_summary",
		Description: "Summarize the current state of a company's analysis session",
	}, at.GetSessionSummary)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_active_sessions",
		Description: "List all companies with an active analysis session",
	}, at.ListActiveSessions)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_help",
		Description: "Explain the analysis workflow and available tools",
	}, at.GetHelp)

	// Knowledge graph Q&A
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "ask_question",
		Description: "Ask a natural-language question about the project catalog and knowledge graph",
	}, qt.AskQuestion)

	srv.AddResource(&mcp.Resource{
		URI:         "system://status",
		Name:        "system-status",
		Description: "Current system health: knowledge store connectivity, catalog size, active sessions",
		MIMEType:    "application/json",
	}, statusHandler(deps))

	return srv
}

// toolNames lists every registered tool, in registration order.
var toolNames = []string{
	"start_company_analysis",
	"suggest_pain_points",
	"confirm_pain_points",
	"select_project",
	"get_session_summary",
	"list_active_sessions",
	"get_help",
	"ask_question",
}

type statusPayload struct {
	Service        string   `json:"service"`
	Version        string   `json:"version"`
	GraphConnected bool     `json:"graph_connected"`
	CatalogSize    int      `json:"catalog_size"`
	ActiveSessions int      `json:"active_sessions"`
	Tools          []string `json:"tools"`
}

func statusHandler(deps Deps) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		payload, err := json.MarshalIndent(statusPayload{
			Service:        "project-recommender",
			Version:        Version,
			GraphConnected: deps.GraphConnected,
			CatalogSize:    deps.CatalogSize,
			ActiveSessions: deps.Sessions.Len(),
			Tools:          toolNames,
		}, "", "  ")
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(payload),
			}},
		}, nil
	}
}
