/*
errors.go - Centralized error types for the engine

PURPOSE:
  All hard-failure error types in one place. Note that most things that go
  wrong in this engine are NOT errors: malformed events and structural
  anomalies are isolated and reported in-band (NormalizationIssue, Anomaly,
  WorkShift.Issues). Only configuration problems fail the whole computation,
  because every downstream duration decision reads the rules.

ERROR CATEGORIES:
  1. Configuration errors - invalid business rules (fatal, fail fast)
  2. Window errors - malformed reporting window (client input)

USAGE:
  Callers can classify with errors.Is:

    if errors.Is(err, engine.ErrInvalidRules) {
        // 422: configuration problem, nothing was processed
    }

SEE ALSO:
  - rules.go: Produces RuleError on Validate()
  - clock.go: Produces window errors on Validate()
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRules is returned when a business-rules threshold is missing
	// or out of range. This is fatal for the whole computation and is raised
	// before any shift is processed.
	ErrInvalidRules = errors.New("invalid business rules")

	// ErrInvalidWindow is returned when a reporting window is malformed
	// (missing bound, or end before start).
	ErrInvalidWindow = errors.New("invalid reporting window")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RuleError reports which threshold failed validation and why.
type RuleError struct {
	Field  string
	Value  int
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("invalid business rules: %s = %d (%s)", e.Field, e.Value, e.Reason)
}

func (e *RuleError) Unwrap() error {
	return ErrInvalidRules
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfigError reports whether err is a fatal configuration failure.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidRules)
}

// IsClientError reports whether err is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidWindow)
}
