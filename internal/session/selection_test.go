package session

import (
	"reflect"
	"testing"
)

func TestParseSelectionsMixed(t *testing.T) {
	// JSON numbers arrive as float64 through the tool boundary.
	selections, err := ParseSelections([]any{float64(1), "Custom pain point", float64(3)})
	if err != nil {
		t.Fatalf("ParseSelections: %v", err)
	}
	if len(selections) != 3 {
		t.Fatalf("got %d selections, want 3", len(selections))
	}
}

func TestParseSelectionsRejectsEmpty(t *testing.T) {
	if _, err := ParseSelections(nil); err == nil {
		t.Error("empty selection list should be rejected")
	}
	if _, err := ParseSelections([]any{"   "}); err == nil {
		t.Error("blank custom text should be rejected")
	}
	if _, err := ParseSelections([]any{true}); err == nil {
		t.Error("non number/string values should be rejected")
	}
}

func TestResolveIndicesAndText(t *testing.T) {
	suggested := []string{"Manual data entry", "Slow reporting", "Churn"}

	got, err := Resolve([]Selection{ByIndex(1), ByText("Legacy integrations"), ByIndex(3)}, suggested, "pain point")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"Manual data entry", "Legacy integrations", "Churn"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveOutOfRange(t *testing.T) {
	suggested := []string{"a", "b", "c"}

	for _, idx := range []int{0, -1, 4, 99} {
		_, err := Resolve([]Selection{ByIndex(idx)}, suggested, "pain point")
		if err == nil {
			t.Errorf("index %d: expected error", idx)
			continue
		}
		if !IsInvalidSelection(err) {
			t.Errorf("index %d: expected SelectionError, got %T", idx, err)
		}
	}
}

func TestResolveFailureYieldsNoPartialResult(t *testing.T) {
	suggested := []string{"a", "b"}

	got, err := Resolve([]Selection{ByIndex(1), ByIndex(9)}, suggested, "pain point")
	if err == nil {
		t.Fatal("expected error for out-of-range index")
	}
	if got != nil {
		t.Errorf("expected nil result on failure, got %v", got)
	}
}
