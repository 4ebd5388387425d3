/*
Package engine implements the time-clock shift reconstruction and analytics engine.

PURPOSE:
  This package contains the pure computation that turns a raw, unordered log
  of clock-in/clock-out punches into discrete work shifts, applies the
  business rules (break deduction, overtime split, cross-midnight handling),
  classifies anomalies, and rolls everything up into per-staff analytics for
  a reporting window.

KEY CONCEPTS IN THIS FILE (types.go):
  - ClockEvent: An immutable punch recorded by the capture system
  - Action: Tagged variant for clock-in vs clock-out (no string comparisons)
  - WorkShift: A reconstructed work session, complete or incomplete
  - Anomaly: A structural problem with no shift to attach to
  - StaffTimeAnalytics: Per-staff rollup over a reporting window

DESIGN PRINCIPLES:
  1. Purity: No I/O, no ambient time, no shared mutable state. The business
     time zone and the reference instant are explicit parameters.
  2. Totality: Malformed or anomalous input never aborts the computation;
     it is isolated and reported in-band as issues/notes/anomalies.
  3. Precision: Hour aggregates use decimal.Decimal so the conservation
     invariants (total = regular + overtime) hold exactly.
  4. Immutability: ClockEvents are read-only facts; WorkShifts are built
     once per pass and never mutated afterwards.

DATA FLOW:
  raw events -> Normalize -> per-staff sorted streams -> ReconstructShifts
  -> per-shift durations -> Aggregate -> StaffTimeAnalytics

SEE ALSO:
  - rules.go: Business rule thresholds (the only place numbers live)
  - normalize.go: Validation and chronological ordering
  - reconstruct.go: The pairing state machine
  - analytics.go: Per-staff aggregation
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type StaffID string
type EventID string

// =============================================================================
// ACTION - Tagged variant for punch direction
// =============================================================================

// Action is the direction of a punch. Using a dedicated type (rather than
// free-form strings from the capture payload) keeps typos out of the pairing
// logic.
type Action string

const (
	ActionClockIn  Action = "clock_in"
	ActionClockOut Action = "clock_out"
)

// Valid reports whether the action is one of the known variants.
func (a Action) Valid() bool {
	return a == ActionClockIn || a == ActionClockOut
}

// =============================================================================
// CLOCK EVENT - Immutable fact from the capture system
// =============================================================================

// ClockEvent is a single punch. The engine only ever reads these; they are
// created by the external capture system and never mutated here.
//
// Timestamp is meaningful only in the configured business time zone. The
// engine must never reinterpret it in another zone.
type ClockEvent struct {
	ID            EventID
	StaffID       StaffID
	StaffName     string
	Action        Action
	Timestamp     time.Time
	PhotoCaptured bool
	CameraError   string // empty when the camera worked
}

// =============================================================================
// WORK SHIFT - Derived work session
// =============================================================================

// WorkShift is one reconstructed work session: exactly one clock-in event and
// at most one matching clock-out. Shifts are regenerated fresh on every query
// and never persisted by this engine.
//
// Invariants (enforced by the reconstructor and covered by tests):
//   - ClockIn precedes ClockOut whenever ClockOut is present
//   - RawMinutes = NetMinutes + BreakMinutes
//   - NetMinutes = RegularMinutes() + OvertimeMinutes, NetMinutes >= 0
type WorkShift struct {
	StaffID   StaffID
	StaffName string

	// AnchorDate is the calendar date of the clock-in, in the business zone.
	// A shift always belongs to the day it started, even across midnight.
	AnchorDate Date

	ClockIn         time.Time
	ClockOut        *time.Time
	ClockInEventID  EventID
	ClockOutEventID EventID // empty for incomplete shifts

	RawMinutes      int
	BreakMinutes    int
	NetMinutes      int
	OvertimeMinutes int

	IsComplete      bool
	CrossesMidnight bool

	// Notes are informational (cross-midnight, zero duration).
	// Issues are validation problems a reviewer should look at.
	Notes  []string
	Issues []string
}

// RegularMinutes returns the non-overtime portion of the net time.
func (s *WorkShift) RegularMinutes() int {
	return s.NetMinutes - s.OvertimeMinutes
}

// HasIssues reports whether any validation issue is attached.
func (s *WorkShift) HasIssues() bool {
	return len(s.Issues) > 0
}

// =============================================================================
// ANOMALY - Structural problem with no shift to attach to
// =============================================================================

// AnomalyKind classifies standalone anomalies.
type AnomalyKind string

const (
	// AnomalyOrphanClockOut is a clock-out with no preceding open clock-in.
	AnomalyOrphanClockOut AnomalyKind = "orphan_clock_out"
)

// Anomaly is a structural problem that cannot ride on a WorkShift (e.g. an
// orphan clock-out has no clock-in anchor to build a shift from). Anomalies
// are part of the output, never errors.
type Anomaly struct {
	Kind      AnomalyKind
	StaffID   StaffID
	StaffName string
	EventID   EventID
	At        time.Time
	Detail    string
}

// =============================================================================
// STAFF TIME ANALYTICS - Per-staff rollup
// =============================================================================

// StaffTimeAnalytics summarizes one staff member's window. Hour fields are
// decimal so that TotalHours = RegularHours + OvertimeHours holds exactly;
// the API layer converts to float at the boundary.
//
// Invariants:
//   - TotalHours = RegularHours + OvertimeHours
//   - CompleteShifts + IncompleteShifts = TotalShifts
type StaffTimeAnalytics struct {
	StaffID   StaffID
	StaffName string

	DaysWorked       int
	TotalShifts      int
	CompleteShifts   int
	IncompleteShifts int
	ShiftsWithIssues int

	// Hour sums cover complete shifts only; incomplete shifts stay visible
	// in the counts above but contribute zero hours.
	TotalHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal

	AverageShiftHours  decimal.Decimal
	LongestShiftHours  decimal.Decimal
	ShortestShiftHours decimal.Decimal

	TotalBreakMinutes int

	// PhotoComplianceRate is a percentage over raw events (both punch
	// directions), independent of shift completeness.
	PhotoComplianceRate decimal.Decimal
}

// =============================================================================
// HOUR CONVERSION
// =============================================================================

var sixty = decimal.NewFromInt(60)

// MinutesToHours converts a minute count to decimal hours.
func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}
