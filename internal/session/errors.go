package session

import (
	"errors"
	"fmt"
)

// PreconditionError reports an operation invoked before its required
// predecessor step. The message tells the caller which step to run first.
type PreconditionError struct {
	Company     string
	MissingStep string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("no %s for %q yet — run %s first", stepArtifact(e.MissingStep), e.Company, e.MissingStep)
}

// stepArtifact names what a step produces, for readable error messages.
func stepArtifact(step string) string {
	switch step {
	case "start_company_analysis":
		return "analysis session"
	case "suggest_pain_points":
		return "suggested pain points"
	case "confirm_pain_points":
		return "project recommendations"
	case "select_project":
		return "selected project"
	}
	return "prior step result"
}

// SelectionError reports an out-of-range or malformed index into a
// suggestion or recommendation list. The session is left untouched.
type SelectionError struct {
	Index int
	Max   int
	What  string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid %s selection %d: choose a number between 1 and %d", e.What, e.Index, e.Max)
}

// IsPrecondition reports whether err is a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// IsInvalidSelection reports whether err is a SelectionError.
func IsInvalidSelection(err error) bool {
	var se *SelectionError
	return errors.As(err, &se)
}
