// Package config loads service configuration from an optional YAML file with
// environment variable overrides. Precedence: defaults, then file, then
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aytaditya/pwc-hackathon/internal/graph"
	"github.com/Aytaditya/pwc-hackathon/internal/llm"
	"github.com/Aytaditya/pwc-hackathon/internal/search"
)

// DefaultPath is tried when no -config flag is given; a missing file there
// is not an error.
const DefaultPath = "config.yaml"

// Config is the fully resolved service configuration.
type Config struct {
	Neo4j  graph.Config
	LLM    llm.Config
	Search search.Config
}

// Default returns the built-in configuration, matching the original local
// deployment.
func Default() Config {
	return Config{
		Neo4j:  graph.DefaultConfig(),
		LLM:    llm.DefaultConfig(),
		Search: search.DefaultConfig(),
	}
}

// file is the YAML shape. Timeouts are plain seconds so the file stays
// trivial to write by hand.
type file struct {
	Neo4j struct {
		URL            string `yaml:"url"`
		Username       string `yaml:"username"`
		Password       string `yaml:"password"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"neo4j"`
	LLM struct {
		APIKey         string `yaml:"api_key"`
		BaseURL        string `yaml:"base_url"`
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		MaxRetries     int    `yaml:"max_retries"`
	} `yaml:"llm"`
	Search struct {
		APIKey         string `yaml:"api_key"`
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"search"`
}

// Load resolves the configuration. An explicit path must exist; the default
// path is optional.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		var f file
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		applyFile(&cfg, f)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// fine, run on defaults and environment
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, f file) {
	setString(&cfg.Neo4j.URL, f.Neo4j.URL)
	setString(&cfg.Neo4j.Username, f.Neo4j.Username)
	setString(&cfg.Neo4j.Password, f.Neo4j.Password)
	setSeconds(&cfg.Neo4j.Timeout, f.Neo4j.TimeoutSeconds)

	setString(&cfg.LLM.APIKey, f.LLM.APIKey)
	setString(&cfg.LLM.BaseURL, f.LLM.BaseURL)
	setString(&cfg.LLM.Model, f.LLM.Model)
	setSeconds(&cfg.LLM.Timeout, f.LLM.TimeoutSeconds)
	if f.LLM.MaxRetries > 0 {
		cfg.LLM.MaxRetries = f.LLM.MaxRetries
	}

	setString(&cfg.Search.APIKey, f.Search.APIKey)
	setString(&cfg.Search.BaseURL, f.Search.BaseURL)
	setSeconds(&cfg.Search.Timeout, f.Search.TimeoutSeconds)
}

func applyEnv(cfg *Config) {
	setString(&cfg.Neo4j.URL, os.Getenv("NEO4J_URL"))
	setString(&cfg.Neo4j.Username, os.Getenv("NEO4J_USERNAME"))
	setString(&cfg.Neo4j.Password, os.Getenv("NEO4J_PASSWORD"))

	setString(&cfg.LLM.APIKey, os.Getenv("OPENAI_API_KEY"))
	setString(&cfg.LLM.BaseURL, os.Getenv("OPENAI_BASE_URL"))
	setString(&cfg.LLM.Model, os.Getenv("OPENAI_MODEL"))

	setString(&cfg.Search.APIKey, os.Getenv("SERP_API_KEY"))
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setSeconds(dst *time.Duration, seconds int) {
	if seconds > 0 {
		*dst = time.Duration(seconds) * time.Second
	}
}
