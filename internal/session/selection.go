package session

import (
	"fmt"
	"strings"
)

// Selection is a tagged variant for user input that is either a 1-based
// index into a presented list or a verbatim custom text. The kind is decided
// once at the tool boundary; nothing downstream re-inspects dynamic types.
type Selection struct {
	index int
	text  string
}

// ByIndex returns a 1-based index selection.
func ByIndex(i int) Selection { return Selection{index: i} }

// ByText returns a custom-text selection.
func ByText(s string) Selection { return Selection{text: s} }

// ParseSelections converts raw JSON values (numbers or strings) into tagged
// selections. Any other value type is rejected.
func ParseSelections(raw []any) ([]Selection, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no pain points selected")
	}
	selections := make([]Selection, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case float64:
			selections = append(selections, ByIndex(int(v)))
		case int:
			selections = append(selections, ByIndex(v))
		case string:
			if strings.TrimSpace(v) == "" {
				return nil, fmt.Errorf("empty pain point text")
			}
			selections = append(selections, ByText(v))
		default:
			return nil, fmt.Errorf("selection must be a number or a string, got %T", item)
		}
	}
	return selections, nil
}

// Resolve maps selections onto the suggested list. Index selections must be
// in [1, len(suggested)]; a violation yields a SelectionError and no partial
// result. Text selections pass through verbatim.
func Resolve(selections []Selection, suggested []string, what string) ([]string, error) {
	resolved := make([]string, 0, len(selections))
	for _, sel := range selections {
		if sel.text != "" {
			resolved = append(resolved, sel.text)
			continue
		}
		if sel.index < 1 || sel.index > len(suggested) {
			return nil, &SelectionError{Index: sel.index, Max: len(suggested), What: what}
		}
		resolved = append(resolved, suggested[sel.index-1])
	}
	return resolved, nil
}
