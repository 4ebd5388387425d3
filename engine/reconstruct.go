/*
reconstruct.go - The shift pairing state machine

PURPOSE:
  Pairs clock-in/clock-out events for one staff member into WorkShift
  records with a single forward scan. This is the core of the engine.

STATE MACHINE (two states):

  AwaitingClockIn --ClockIn--> AwaitingClockOut --ClockOut--> AwaitingClockIn

  AwaitingClockIn + ClockOut:  orphan clock-out. There is no clock-in anchor
    to build a shift from, so a standalone Anomaly is emitted and the state
    does not change.

  AwaitingClockOut + ClockIn:  the prior shift never closed. It is emitted
    incomplete with a "missing clock-out" issue, and the new clock-in opens
    the next shift.

  End of scan in AwaitingClockOut: the open shift is emitted incomplete
    with a "still open" issue.

EDGE POLICY:
  - A clock-out at the exact clock-in instant is a valid degenerate shift of
    zero net minutes; it is flagged with a note, never discarded.
  - A clock-out on a different calendar date (business zone) marks the shift
    cross-midnight; the anchor date stays the clock-in's date.

FAILURE SEMANTICS:
  This stage never fails. Every ClockIn produces exactly one WorkShift,
  complete or incomplete; every anomaly becomes a note/issue on the nearest
  shift or a standalone Anomaly. No event is dropped silently.

SEE ALSO:
  - duration.go: Fills in the minute breakdown for complete shifts
  - analytics.go: Rolls the emitted shifts up per staff member
*/
package engine

import "time"

// Shift issue and note strings. These surface verbatim in reports, so they
// read as reviewer-facing English rather than error codes.
const (
	IssueMissingClockOut = "missing clock-out before new clock-in"
	IssueShiftStillOpen  = "shift still open at end of reporting window"
	IssueSupersededOpen  = "open shift superseded by a later open shift"

	NoteCrossesMidnight = "shift crosses midnight"
	NoteZeroDuration    = "zero-duration shift"
)

type pairingState int

const (
	awaitingClockIn pairingState = iota
	awaitingClockOut
)

// ReconstructShifts scans one staff member's chronologically sorted events
// and emits their shifts plus any standalone anomalies. The input MUST be a
// single staff member's stream as produced by Normalize; ordering is what
// makes the single forward scan correct.
func ReconstructShifts(events []ClockEvent, rules Rules, zone *time.Location) ([]WorkShift, []Anomaly) {
	var (
		shifts    []WorkShift
		anomalies []Anomaly
		open      *WorkShift
		state     = awaitingClockIn
	)

	for i := range events {
		ev := events[i]
		switch state {
		case awaitingClockIn:
			switch ev.Action {
			case ActionClockIn:
				open = openShift(ev, zone)
				state = awaitingClockOut
			case ActionClockOut:
				anomalies = append(anomalies, Anomaly{
					Kind:      AnomalyOrphanClockOut,
					StaffID:   ev.StaffID,
					StaffName: ev.StaffName,
					EventID:   ev.ID,
					At:        ev.Timestamp,
					Detail:    "clock-out with no preceding clock-in",
				})
			}

		case awaitingClockOut:
			switch ev.Action {
			case ActionClockIn:
				// Prior shift never closed; emit it incomplete and start over.
				open.Issues = append(open.Issues, IssueMissingClockOut)
				shifts = append(shifts, *open)
				open = openShift(ev, zone)
			case ActionClockOut:
				closeShift(open, ev, rules, zone)
				shifts = append(shifts, *open)
				open = nil
				state = awaitingClockIn
			}
		}
	}

	if state == awaitingClockOut {
		open.Issues = append(open.Issues, IssueShiftStillOpen)
		shifts = append(shifts, *open)
	}

	if rules.SingleOpenShift {
		flagSupersededOpenShifts(shifts)
	}

	return shifts, anomalies
}

// openShift starts a new shift anchored to the clock-in's calendar date.
func openShift(ev ClockEvent, zone *time.Location) *WorkShift {
	return &WorkShift{
		StaffID:        ev.StaffID,
		StaffName:      ev.StaffName,
		AnchorDate:     DateOf(ev.Timestamp, zone),
		ClockIn:        ev.Timestamp,
		ClockInEventID: ev.ID,
	}
}

// closeShift completes a shift with its matching clock-out and fills in the
// minute breakdown per the business rules.
func closeShift(s *WorkShift, ev ClockEvent, rules Rules, zone *time.Location) {
	out := ev.Timestamp
	s.ClockOut = &out
	s.ClockOutEventID = ev.ID
	s.IsComplete = true

	raw := int(out.Sub(s.ClockIn).Minutes())
	d := ComputeDurations(raw, rules)
	s.RawMinutes = d.RawMinutes
	s.BreakMinutes = d.BreakMinutes
	s.NetMinutes = d.NetMinutes
	s.OvertimeMinutes = d.OvertimeMinutes

	if raw == 0 {
		s.Notes = append(s.Notes, NoteZeroDuration)
	}
	if !DateOf(out, zone).Equal(s.AnchorDate) {
		s.CrossesMidnight = true
		s.Notes = append(s.Notes, NoteCrossesMidnight)
	}
}

// flagSupersededOpenShifts adds an issue to every incomplete shift except the
// most recent one. Configured via Rules.SingleOpenShift: only the latest open
// shift counts as "currently clocked in", but earlier ones are still emitted
// so nothing vanishes from the report.
func flagSupersededOpenShifts(shifts []WorkShift) {
	lastOpen := -1
	for i := range shifts {
		if !shifts[i].IsComplete {
			lastOpen = i
		}
	}
	for i := range shifts {
		if !shifts[i].IsComplete && i != lastOpen {
			shifts[i].Issues = append(shifts[i].Issues, IssueSupersededOpen)
		}
	}
}
