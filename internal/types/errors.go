package types

import "fmt"

// ValidationError reports malformed settings or a pool that cannot fill the
// roster shape even once. No solver invocation is attempted after one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SolveFailedError reports that every relaxation level failed and the
// fallback generator produced zero lineups.
type SolveFailedError struct {
	Reason string
}

func (e *SolveFailedError) Error() string {
	return fmt.Sprintf("portfolio solve failed: %s", e.Reason)
}

// InvariantViolationError reports a structural check failing on an extracted
// lineup after an optimal solve. This is a defect-class error: it aborts the
// whole solve and is never silently corrected.
type InvariantViolationError struct {
	LineupIndex int
	Check       string
	Detail      string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("lineup %d violates %s: %s", e.LineupIndex, e.Check, e.Detail)
}
