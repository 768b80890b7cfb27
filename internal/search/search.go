// Package search looks up company profiles through the SerpAPI Google
// search endpoint. Results are best-effort: a failed lookup degrades to an
// empty profile rather than blocking the conversation flow.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

// Config configures the SerpAPI client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the endpoint the original deployment used.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://serpapi.com/search",
		Timeout: 15 * time.Second,
	}
}

// Searcher resolves a company name into a CompanyInfo profile.
type Searcher interface {
	Lookup(ctx context.Context, companyName string) (models.CompanyInfo, error)
}

// Client is the SerpAPI-backed Searcher.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// New creates a search client.
func New(cfg Config, log *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, http: &http.Client{}, log: log.Named("search")}
}

// serpResponse covers the slices of the SerpAPI payload we consume.
type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
	KnowledgeGraph struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	} `json:"knowledge_graph"`
	AnswerBox struct {
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
	} `json:"answer_box"`
}

// Lookup fetches company context: the first three organic results plus the
// knowledge panel and answer box when present.
func (c *Client) Lookup(ctx context.Context, companyName string) (models.CompanyInfo, error) {
	info := models.CompanyInfo{Name: companyName}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", companyName+" company business model services products")
	params.Set("engine", "google")
	params.Set("num", strconv.Itoa(3))
	params.Set("api_key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return info, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return info, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("search request: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return info, fmt.Errorf("read search response: %w", err)
	}

	var parsed serpResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return info, fmt.Errorf("decode search response: %w", err)
	}

	for i, r := range parsed.OrganicResults {
		if i == 3 {
			break
		}
		info.Results = append(info.Results, models.SearchResult{
			Title:   r.Title,
			Snippet: r.Snippet,
			Link:    r.Link,
		})
	}
	info.KnowledgePanel = models.KnowledgePanel{
		Type:        parsed.KnowledgeGraph.Type,
		Description: parsed.KnowledgeGraph.Description,
	}
	if parsed.AnswerBox.Answer != "" {
		info.AnswerBox = parsed.AnswerBox.Answer
	} else {
		info.AnswerBox = parsed.AnswerBox.Snippet
	}

	c.log.Debug("company lookup",
		zap.String("company", companyName),
		zap.Int("results", len(info.Results)))

	return info, nil
}
