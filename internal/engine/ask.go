package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/graph"
	"github.com/Aytaditya/pwc-hackathon/internal/llm"
)

// Answer is the result of a graph question.
type Answer struct {
	Text       string
	Cypher     string
	Confidence string
	RowCount   int
}

const apologyAnswer = "I apologize, but I'm having trouble processing your question right now. Please try again."

// Ask answers a natural-language question about the project graph. With a
// reachable knowledge store it generates a Cypher query, executes it, and
// summarizes the rows; any failure along that path degrades to a general
// LLM answer, and total failure to a fixed apology.
func (e *Engine) Ask(ctx context.Context, question, sessionContext string) Answer {
	if e.graph != nil {
		if ans, ok := e.askGraph(ctx, question); ok {
			return ans
		}
	}
	return Answer{Text: e.askGeneral(ctx, question, sessionContext), Confidence: "Low"}
}

func (e *Engine) askGraph(ctx context.Context, question string) (Answer, bool) {
	cypher, err := e.generateCypher(ctx, question)
	if err != nil {
		e.log.Warn("cypher generation failed", zap.Error(err))
		return Answer{}, false
	}

	rows, err := e.graph.Run(ctx, cypher, nil)
	if err != nil {
		e.log.Warn("cypher execution failed",
			zap.String("cypher", cypher),
			zap.Error(err))
		return Answer{}, false
	}

	text, err := e.summarizeRows(ctx, question, cypher, rows)
	if err != nil {
		e.log.Warn("result summarization failed", zap.Error(err))
		return Answer{}, false
	}

	return Answer{
		Text:       text,
		Cypher:     cypher,
		Confidence: confidence(len(rows)),
		RowCount:   len(rows),
	}, true
}

func confidence(rows int) string {
	switch {
	case rows > 5:
		return "High"
	case rows > 0:
		return "Medium"
	default:
		return "Low"
	}
}

func (e *Engine) generateCypher(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(`You are a Cypher query generator for a Neo4j graph database containing project information.

%s

EXAMPLES:
Question: "What projects use AI technology?"
Cypher: MATCH (p:Project)-[:USES_TECHNOLOGY]->(t:Technology) WHERE t.name CONTAINS 'AI' RETURN p.name, p.summary, t.name

Question: "Which projects share the most pain points?"
Cypher: MATCH (p1:Project)-[r:SHARES_PAIN_POINTS]-(p2:Project) RETURN p1.name, p2.name, r.count ORDER BY r.count DESC LIMIT 5

Question: "What are the most common capabilities?"
Cypher: MATCH (c:Capability)<-[:HAS_CAPABILITY]-(p:Project) RETURN c.name, COUNT(p) as frequency ORDER BY frequency DESC LIMIT 10

Question: "Show me projects in the cybersecurity industry"
Cypher: MATCH (p:Project)-[:TARGETS]->(i:Industry) WHERE i.name CONTAINS 'Cybersecurity' RETURN p.name, p.summary, p.url

IMPORTANT RULES:
- Return only the Cypher query, no explanation
- Use CONTAINS for partial string matching when appropriate
- Always include LIMIT to prevent overwhelming results (default 10)
- Use proper Neo4j syntax and escaping

Human Question: "%s"

Cypher Query:`, graph.SchemaContext, question)

	raw, err := e.llm.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   200,
		Temperature: 0.1,
	})
	if err != nil {
		return "", err
	}

	cypher := strings.TrimSpace(stripFences(raw))
	if cypher == "" {
		return "", fmt.Errorf("%w: empty cypher", llm.ErrInvalidOutput)
	}
	return cypher, nil
}

func (e *Engine) summarizeRows(ctx context.Context, question, cypher string, rows []map[string]any) (string, error) {
	limited := rows
	if len(limited) > 10 {
		limited = limited[:10]
	}
	encoded, err := json.MarshalIndent(limited, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode rows: %w", err)
	}

	prompt := fmt.Sprintf(`You are a helpful assistant analyzing project data from a graph database.

Human Question: "%s"

Cypher Query Used: %s

Query Results: %s

Provide a clear, informative answer to the human's question based on the results.

GUIDELINES:
- Be conversational and helpful
- Summarize key insights from the data
- If no results were found, explain what might be searched for instead
- Include specific project names, technologies, or metrics when relevant
- Keep the response concise but informative

Response:`, question, cypher, encoded)

	text, err := e.llm.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   500,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// askGeneral answers without the knowledge store, using session context when
// the question concerns an active analysis.
func (e *Engine) askGeneral(ctx context.Context, question, sessionContext string) string {
	prompt := fmt.Sprintf(`You are a knowledgeable assistant for a graph database containing project information.

The database contains: Projects, Technologies, Industries, Pain Points, Capabilities, Domains, and Regulations.

%sQuestion: %s

Provide a helpful response. If you would need to access specific data, explain what kind of query would be needed.`,
		contextPreamble(sessionContext), question)

	text, err := e.llm.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   400,
		Temperature: 0.3,
	})
	if err != nil {
		e.log.Warn("general answer failed", zap.Error(err))
		return apologyAnswer
	}
	return strings.TrimSpace(text)
}

func contextPreamble(sessionContext string) string {
	if sessionContext == "" {
		return ""
	}
	return sessionContext + "\n\n"
}

// stripFences removes a markdown code fence wrapper, which models often add
// around generated queries.
func stripFences(s string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
