/*
rules.go - Business rule thresholds

PURPOSE:
  The single source for every numeric threshold the engine consults. No
  other file is permitted to embed a duration/overtime constant inline;
  routing everything through Rules keeps the thresholds auditable and
  testable in isolation, and keeps them configurable (the exact values are
  a business decision, not a code decision).

THRESHOLDS:
  BreakEligibleMinutes:  Minimum raw shift length that triggers the unpaid
                         break deduction.
  BreakDeductionMinutes: Amount deducted when eligible.
  DailyRegularMinutes:   Net minutes above this count as overtime.

POLICY SWITCHES:
  SingleOpenShift: When true, only the most recent unclosed shift in a
                   window is treated as "still open"; earlier unclosed
                   shifts get an extra issue flag. All shifts are emitted
                   either way - nothing is dropped.

VALIDATION:
  Validate() fails fast with a RuleError before any shift is processed.
  A zero-value Rules is invalid on purpose: forgetting to configure the
  rules must be loud, not a silent zero-deduction payroll report.

SEE ALSO:
  - duration.go: The only consumer of the numeric thresholds
  - reconstruct.go: Consumer of SingleOpenShift
*/
package engine

// Rules is the immutable business-rules snapshot for one computation pass.
// Loaded once per invocation and never mutated while a pass is running.
type Rules struct {
	BreakEligibleMinutes  int
	BreakDeductionMinutes int
	DailyRegularMinutes   int
	SingleOpenShift       bool
}

// DefaultRules returns the thresholds used by demos and tests: a 6 hour
// shift earns a 60 minute unpaid break, and an 8 hour day is regular time.
// Production values come from configuration, not from this function.
func DefaultRules() Rules {
	return Rules{
		BreakEligibleMinutes:  360,
		BreakDeductionMinutes: 60,
		DailyRegularMinutes:   480,
	}
}

// Validate checks every threshold and returns a RuleError (wrapping
// ErrInvalidRules) on the first violation.
func (r Rules) Validate() error {
	if r.BreakEligibleMinutes <= 0 {
		return &RuleError{Field: "break_eligible_minutes", Value: r.BreakEligibleMinutes, Reason: "must be positive"}
	}
	if r.BreakDeductionMinutes < 0 {
		return &RuleError{Field: "break_deduction_minutes", Value: r.BreakDeductionMinutes, Reason: "must not be negative"}
	}
	if r.DailyRegularMinutes <= 0 {
		return &RuleError{Field: "daily_regular_minutes", Value: r.DailyRegularMinutes, Reason: "must be positive"}
	}
	return nil
}
