package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Validator checks a decoded value after JSON extraction. Returns nil if the
// value is usable.
type Validator[T any] func(T) error

// ExtractJSON pulls a JSON value of type T out of raw LLM text. It tolerates
// markdown code fences and prose before or after the value, and accepts both
// object and array roots.
func ExtractJSON[T any](raw string, validate Validator[T]) (T, error) {
	var zero T

	cleaned := stripCodeFences(raw)
	block := firstJSONBlock(cleaned)
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON value found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validate != nil {
		if err := validate(result); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// Fallback is one degrade tier. It receives the raw model output (empty when
// the call itself failed) and may produce a replacement value.
type Fallback[T any] func(raw string) (T, bool)

// StructuredCall runs a completion and decodes the response into T, walking
// the fallback chain when the call fails or its output cannot be parsed. The
// last tier is expected to always produce a value; if no tier does, the zero
// value and false are returned. This is the shared degrade path: external or
// malformed-upstream failures never escape as errors from here.
func StructuredCall[T any](ctx context.Context, c Client, req Request, validate Validator[T], tiers ...Fallback[T]) (T, bool) {
	raw, err := c.Complete(ctx, req)
	if err == nil {
		if v, perr := ExtractJSON[T](raw, validate); perr == nil {
			return v, true
		}
	}

	for _, tier := range tiers {
		if v, ok := tier(raw); ok {
			return v, true
		}
	}

	var zero T
	return zero, false
}

// stripCodeFences removes markdown code fences (```json ... ``` or plain ```).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	var kept []string
	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// firstJSONBlock finds the first balanced {...} or [...] in the text,
// skipping brackets inside string literals.
func firstJSONBlock(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}
	open := s[start]
	var closing byte = '}'
	if open == '[' {
		closing = ']'
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
