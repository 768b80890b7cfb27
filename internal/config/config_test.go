package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err, "an explicit missing path is an error")

	// Missing default path is fine.
	t.Chdir(t.TempDir())
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URL)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "https://serpapi.com/search", cfg.Search.BaseURL)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
neo4j:
  url: bolt://graph.internal:7687
  timeout_seconds: 30
llm:
  model: gpt-4o
  max_retries: 3
search:
  api_key: serp-123
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://graph.internal:7687", cfg.Neo4j.URL)
	assert.Equal(t, 30*time.Second, cfg.Neo4j.Timeout)
	assert.Equal(t, "neo4j", cfg.Neo4j.Username, "unset fields keep defaults")
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, "serp-123", cfg.Search.APIKey)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
llm:
  api_key: from-file
  model: gpt-4o
`)
	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("NEO4J_PASSWORD", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model, "file values survive unrelated env overrides")
	assert.Equal(t, "env-secret", cfg.Neo4j.Password)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "neo4j: [not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}
