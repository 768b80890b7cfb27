package models

import (
	"encoding/json"
	"testing"
)

func TestPhasesPreserveKeyOrder(t *testing.T) {
	raw := `{"phase_1": "Discovery", "phase_3": "Rollout", "phase_2": "Build"}`

	var phases Phases
	if err := json.Unmarshal([]byte(raw), &phases); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []Phase{
		{Name: "phase_1", Description: "Discovery"},
		{Name: "phase_3", Description: "Rollout"},
		{Name: "phase_2", Description: "Build"},
	}
	if len(phases) != len(want) {
		t.Fatalf("got %d phases, want %d", len(phases), len(want))
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phases[%d] = %+v, want %+v (appearance order must survive decoding)", i, phases[i], want[i])
		}
	}
}

func TestPhasesMarshalRoundTrip(t *testing.T) {
	phases := Phases{
		{Name: "phase_1", Description: "Discovery (1 week)"},
		{Name: "phase_2", Description: "Build (3 weeks)"},
	}

	data, err := json.Marshal(phases)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"phase_1":"Discovery (1 week)","phase_2":"Build (3 weeks)"}` {
		t.Errorf("unexpected encoding: %s", data)
	}

	var decoded Phases
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 || decoded[0] != phases[0] || decoded[1] != phases[1] {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestPhasesRejectNonObject(t *testing.T) {
	var phases Phases
	if err := json.Unmarshal([]byte(`["phase one"]`), &phases); err == nil {
		t.Error("array form should be rejected")
	}
}

func TestStateOrdering(t *testing.T) {
	order := []ConversationState{
		StateInitial,
		StateCompanySearched,
		StatePainPointsSuggested,
		StatePainPointsConfirmed,
		StateProjectsRecommended,
		StateProjectSelected,
		StateIntegrationDiscussed,
	}
	for i := 1; i < len(order); i++ {
		if !order[i-1].Before(order[i]) {
			t.Errorf("%s should come before %s", order[i-1], order[i])
		}
		if order[i].Before(order[i-1]) {
			t.Errorf("%s should not come before %s", order[i], order[i-1])
		}
	}
}

func TestAdvanceOnlyForward(t *testing.T) {
	s := CompanySession{State: StateProjectsRecommended}

	s.Advance(StatePainPointsSuggested)
	if s.State != StateProjectsRecommended {
		t.Errorf("Advance regressed state to %q", s.State)
	}

	s.Advance(StateIntegrationDiscussed)
	if s.State != StateIntegrationDiscussed {
		t.Errorf("Advance failed to move forward, state %q", s.State)
	}
}
