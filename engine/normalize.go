/*
normalize.go - Event validation and chronological ordering

PURPOSE:
  Turns the raw, unordered event log into per-staff, chronologically sorted
  streams scoped to the reporting window. This is the only stage that looks
  at event well-formedness; everything downstream may assume its input is
  ordered and structurally sound.

CONTRACT:
  - Events with a missing staff id, an unknown action, or a zero/unparsable
    timestamp are EXCLUDED from the sorted output and reported as
    NormalizationIssues. Never fatal: the rest of the batch proceeds.
  - Events outside the window are filtered silently (they are simply out of
    scope for the query, not malformed).
  - Timestamp ties break on event id, so repeated runs over the same input
    produce identical output regardless of input order.
  - Pure transformation: no side effects, input slice is not reordered.

SEE ALSO:
  - reconstruct.go: Consumes the sorted per-staff streams
*/
package engine

import "sort"

// NormalizationIssue records a single event that could not be normalized.
// Issues are part of the output, never errors (taxonomy: non-fatal,
// isolated, reported in-band).
type NormalizationIssue struct {
	EventID EventID
	StaffID StaffID
	Reason  string
}

// Normalization reasons.
const (
	ReasonMissingStaffID   = "missing staff id"
	ReasonUnknownAction    = "unknown action"
	ReasonMissingTimestamp = "missing or unparsable timestamp"
)

// Normalize validates raw events, scopes them to the window, and groups them
// by staff member in chronological order.
func Normalize(events []ClockEvent, window Window) (map[StaffID][]ClockEvent, []NormalizationIssue) {
	byStaff := make(map[StaffID][]ClockEvent)
	var issues []NormalizationIssue

	for _, ev := range events {
		if reason, ok := malformed(ev); !ok {
			issues = append(issues, NormalizationIssue{
				EventID: ev.ID,
				StaffID: ev.StaffID,
				Reason:  reason,
			})
			continue
		}
		if !window.Contains(ev.Timestamp) {
			continue
		}
		byStaff[ev.StaffID] = append(byStaff[ev.StaffID], ev)
	}

	for id := range byStaff {
		stream := byStaff[id]
		sort.SliceStable(stream, func(i, j int) bool {
			if !stream[i].Timestamp.Equal(stream[j].Timestamp) {
				return stream[i].Timestamp.Before(stream[j].Timestamp)
			}
			// Deterministic tie-break so repeated runs agree.
			return stream[i].ID < stream[j].ID
		})
	}

	return byStaff, issues
}

// malformed returns the rejection reason for an event that cannot enter the
// pairing stage, or ok=true when the event is sound.
func malformed(ev ClockEvent) (reason string, ok bool) {
	switch {
	case ev.StaffID == "":
		return ReasonMissingStaffID, false
	case !ev.Action.Valid():
		return ReasonUnknownAction, false
	case ev.Timestamp.IsZero():
		return ReasonMissingTimestamp, false
	}
	return "", true
}
