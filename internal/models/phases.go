package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Phase is one implementation phase of an integration plan.
type Phase struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Phases is an ordered sequence of implementation phases. On the wire it is a
// JSON object keyed by phase name ({"phase_1": "...", ...}), which is how the
// LLM is asked to emit it; key order is preserved when decoding.
type Phases []Phase

// UnmarshalJSON decodes a phase object while keeping the key order the
// encoder/json map decoding would lose.
func (p *Phases) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("implementation_phases: expected JSON object")
	}

	var phases Phases
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("implementation_phases: non-string key")
		}
		var desc string
		if err := dec.Decode(&desc); err != nil {
			return fmt.Errorf("implementation_phases: phase %q: %w", key, err)
		}
		phases = append(phases, Phase{Name: key, Description: desc})
	}

	*p = phases
	return nil
}

// MarshalJSON encodes phases back into an ordered JSON object.
func (p Phases) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, phase := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(phase.Name)
		if err != nil {
			return nil, err
		}
		desc, err := json.Marshal(phase.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(desc)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
