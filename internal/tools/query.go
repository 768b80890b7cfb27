package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/engine"
	"github.com/Aytaditya/pwc-hackathon/internal/models"
	"github.com/Aytaditya/pwc-hackathon/internal/session"
)

// QueryTools holds references needed by the graph question tool.
type QueryTools struct {
	Sessions *session.Store
	Engine   *engine.Engine
	Log      *zap.Logger
}

type AskQuestionInput struct {
	Question    string `json:"question" jsonschema:"Natural-language question about the project catalog"`
	CompanyName string `json:"company_name,omitempty" jsonschema:"Optional company whose analysis session gives the question context"`
}

// AskQuestion answers a free-form question about the project graph. When a
// company is named and has an active session, its confirmed pain points and
// selection are passed along as context. The answer always comes back as a
// successful tool result; degradation is reflected in the confidence line.
func (t *QueryTools) AskQuestion(ctx context.Context, _ *mcp.CallToolRequest, input AskQuestionInput) (*mcp.CallToolResult, any, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return toolError("Question is required"), nil, nil
	}

	sessionContext := ""
	if input.CompanyName != "" {
		if s, err := t.Sessions.Get(input.CompanyName); err == nil {
			sessionContext = sessionPreamble(s.CompanyName, s.ConfirmedPainPoints, selectedName(s.SelectedProject))
		}
	}

	ans := t.Engine.Ask(ctx, question, sessionContext)

	t.Log.Debug("question answered",
		zap.String("confidence", ans.Confidence),
		zap.Int("rows", ans.RowCount))

	var b strings.Builder
	b.WriteString(ans.Text)
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "Confidence: %s", ans.Confidence)
	if ans.Cypher != "" {
		fmt.Fprintf(&b, " | Query: `%s`", ans.Cypher)
	}

	return toolText(b.String()), nil, nil
}

func sessionPreamble(company string, painPoints []string, selected string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Active analysis context: company %s", company)
	if len(painPoints) > 0 {
		fmt.Fprintf(&b, ", confirmed pain points: %s", strings.Join(painPoints, "; "))
	}
	if selected != "" {
		fmt.Fprintf(&b, ", selected project: %s", selected)
	}
	b.WriteString(".")
	return b.String()
}

func selectedName(m *models.ProjectMatch) string {
	if m == nil {
		return ""
	}
	return m.ProjectName
}
