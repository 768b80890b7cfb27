package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aytaditya/pwc-hackathon/internal/catalog"
)

func TestAskGraphPath(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		"```cypher\nMATCH (p:Project) RETURN p.name LIMIT 10\n```",
		"The catalog has three projects: Talk to Data, CyberSecure GenAI, and HR AI Studio.",
	}}
	g := &fakeGraph{rows: []map[string]any{
		{"p.name": "Talk to Data"},
		{"p.name": "CyberSecure GenAI"},
		{"p.name": "HR AI Studio"},
	}}
	e := newTestEngine(t, client, catalog.Static(nil), g)

	ans := e.Ask(context.Background(), "What projects exist?", "")

	assert.Equal(t, "MATCH (p:Project) RETURN p.name LIMIT 10", ans.Cypher,
		"code fences are stripped from the generated query")
	assert.Equal(t, "Medium", ans.Confidence)
	assert.Equal(t, 3, ans.RowCount)
	assert.Contains(t, ans.Text, "three projects")

	require.Len(t, g.cyphers, 1)
	assert.Equal(t, ans.Cypher, g.cyphers[0])
}

func TestAskConfidenceScalesWithRows(t *testing.T) {
	rows := make([]map[string]any, 6)
	for i := range rows {
		rows[i] = map[string]any{"n": int64(i)}
	}
	client := &scriptedLLM{responses: []string{"MATCH (n) RETURN n", "Plenty of results."}}
	g := &fakeGraph{rows: rows}
	e := newTestEngine(t, client, catalog.Static(nil), g)

	ans := e.Ask(context.Background(), "How much data is there?", "")
	assert.Equal(t, "High", ans.Confidence)
}

func TestAskCypherFailureDegradesToGeneral(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		"MATCH (p:Broken",
		"Generally, the catalog covers AI and automation projects.",
	}}
	g := &fakeGraph{runErr: errors.New("syntax error")}
	e := newTestEngine(t, client, catalog.Static(nil), g)

	ans := e.Ask(context.Background(), "What is in the catalog?", "")

	assert.Empty(t, ans.Cypher)
	assert.Equal(t, "Low", ans.Confidence)
	assert.Contains(t, ans.Text, "Generally")
}

func TestAskWithoutGraphUsesGeneralAnswer(t *testing.T) {
	client := &scriptedLLM{responses: []string{"The catalog focuses on AI-driven business tooling."}}
	e := newTestEngine(t, client, catalog.Static(nil), nil)

	ans := e.Ask(context.Background(), "What is the catalog about?", "")

	assert.Equal(t, "Low", ans.Confidence)
	assert.Equal(t, "The catalog focuses on AI-driven business tooling.", ans.Text)
	require.Len(t, client.prompts, 1, "no cypher generation without a knowledge store")
}

func TestAskTotalFailureReturnsApology(t *testing.T) {
	client := &scriptedLLM{err: errors.New("service down")}
	e := newTestEngine(t, client, catalog.Static(nil), nil)

	ans := e.Ask(context.Background(), "Anything?", "")
	assert.Equal(t, apologyAnswer, ans.Text)
	assert.Equal(t, "Low", ans.Confidence)
}

func TestAskPassesSessionContext(t *testing.T) {
	client := &scriptedLLM{responses: []string{"Context-aware answer."}}
	e := newTestEngine(t, client, catalog.Static(nil), nil)

	e.Ask(context.Background(), "Which project fits best?",
		"Active analysis context: company Acme, confirmed pain points: Manual data entry.")

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "company Acme")
}
