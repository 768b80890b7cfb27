package engine

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/llm"
	"github.com/Aytaditya/pwc-hackathon/internal/models"
)

const maxHeuristicSuggestions = 10

// Suggest turns a company profile into 6-10 candidate pain points. It never
// returns an empty list: a structured parse failure falls back to line-based
// bullet extraction of the raw model output, and total failure falls back to
// a fixed generic list.
func (e *Engine) Suggest(ctx context.Context, info models.CompanyInfo) []string {
	req := llm.Request{
		Prompt:      suggestPrompt(info),
		MaxTokens:   400,
		Temperature: 0.3,
	}

	validate := func(points []string) error {
		if len(points) == 0 {
			return fmt.Errorf("empty pain point list")
		}
		return nil
	}

	points, _ := llm.StructuredCall(ctx, e.llm, req, validate,
		func(raw string) ([]string, bool) {
			extracted := extractBulleted(raw)
			if len(extracted) == 0 {
				return nil, false
			}
			e.log.Info("pain point suggestion degraded to heuristic extraction",
				zap.String("company", info.Name),
				zap.Int("extracted", len(extracted)))
			return extracted, true
		},
		func(string) ([]string, bool) {
			e.log.Warn("pain point suggestion degraded to generic defaults",
				zap.String("company", info.Name))
			return defaultPainPoints(), true
		},
	)
	return points
}

func suggestPrompt(info models.CompanyInfo) string {
	var ctx strings.Builder
	fmt.Fprintf(&ctx, "Company: %s\n", info.Name)

	if info.KnowledgePanel.Type != "" || info.KnowledgePanel.Description != "" {
		fmt.Fprintf(&ctx, "Industry: %s\n", orUnknown(info.KnowledgePanel.Type))
		fmt.Fprintf(&ctx, "Description: %s\n", info.KnowledgePanel.Description)
	}
	if info.AnswerBox != "" {
		fmt.Fprintf(&ctx, "Overview: %s\n", info.AnswerBox)
	}
	for i, r := range info.Results {
		if i == 3 {
			break
		}
		fmt.Fprintf(&ctx, "\nResult %d: %s - %s\n", i+1, r.Title, r.Snippet)
	}

	return fmt.Sprintf(`Based on this company information, suggest 6-10 specific business pain points:

%s

Focus on common business challenges like:
- Manual process automation needs
- Data analysis and reporting gaps
- Customer service inefficiencies
- Security and compliance issues
- Sales and marketing challenges
- HR and recruitment difficulties
- Technology integration problems

Return only a JSON array of pain point strings.`, ctx.String())
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// extractBulleted pulls pain points out of free-form model output by
// stripping bullet and numbering prefixes from each line. Capped at 10.
func extractBulleted(raw string) []string {
	var points []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lead, _ := utf8.DecodeRuneInString(trimmed)
		if !strings.ContainsRune("-•*123456789", lead) {
			continue
		}
		cleaned := strings.TrimLeft(trimmed, "-•*0123456789. )")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned != "" {
			points = append(points, cleaned)
		}
		if len(points) == maxHeuristicSuggestions {
			break
		}
	}
	return points
}
