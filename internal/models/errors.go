package models

import "fmt"

// ValidationError signals malformed or out-of-range input. It is always
// raised before any mutation, so a failed call leaves no partial state.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

// InvariantError signals a violated cross-field invariant, such as fund
// percentages not summing to 100. Actual carries the computed sum so the
// caller can surface an actionable diagnostic.
type InvariantError struct {
	Invariant string
	Actual    float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s (got %.2f)", e.Invariant, e.Actual)
}
