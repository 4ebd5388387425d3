/*
Package report orchestrates the time-clock engine over a reporting window.

PURPOSE:
  The domain layer between the raw event storage and the serving layer.
  Given an event source, a window, and the business rules, it runs the full
  pipeline (normalize -> reconstruct -> aggregate) and assembles one Report
  ready for display or export.

PIPELINE:
  1. Validate rules (fatal on failure - nothing is processed)
  2. Validate the window (client error)
  3. Fetch raw events from the EventSource
  4. Normalize into per-staff sorted streams
  5. Reconstruct shifts per staff member, fanned out across goroutines
     (streams are disjoint, so per-staff work is embarrassingly parallel;
     each stream itself is strictly sequential)
  6. Aggregate analytics per staff member
  7. Merge deterministically: shifts newest-first, analytics by staff id

FRESHNESS:
  Every Build call recomputes from the raw events. Reports are never cached
  across requests; a payroll report must reflect the data at query time.

SEE ALSO:
  - engine: The pure computation this package drives
  - store/sqlite: The production EventSource
  - store/memory: The in-memory EventSource used in tests
*/
package report

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lengolf/timeclock-engine/engine"
)

// EventSource supplies raw clock events for a window, optionally filtered to
// specific staff members. The capture system owns writes; the engine only
// reads. Implementations must not return events outside the window's staff
// filter, but MAY return events outside the time bounds (normalization
// re-scopes them).
type EventSource interface {
	EventsInRange(ctx context.Context, window engine.Window, staffIDs []engine.StaffID) ([]engine.ClockEvent, error)
}

// Request describes one reporting query.
type Request struct {
	Window   engine.Window
	StaffIDs []engine.StaffID // empty = all staff present in the window

	// AsOf is the reference instant stamped on the report. Passed in
	// explicitly so the pipeline never reads ambient system time.
	AsOf time.Time
}

// Report is the full engine output for one query.
type Report struct {
	Window      engine.Window
	GeneratedAt time.Time

	// Rules is the read-only snapshot in effect, exposed so the UI can
	// display the thresholds that produced these numbers.
	Rules engine.Rules

	// Shifts are sorted by clock-in time descending (display order).
	Shifts []engine.WorkShift

	// Analytics holds one entry per staff member present in the input,
	// sorted by staff id.
	Analytics []engine.StaffTimeAnalytics

	// Anomalies are structural problems with no shift to attach to.
	Anomalies []engine.Anomaly

	// Issues are events excluded during normalization.
	Issues []engine.NormalizationIssue
}

// Builder runs reporting queries against a fixed source, rules snapshot, and
// business time zone.
type Builder struct {
	Source EventSource
	Rules  engine.Rules
	Zone   *time.Location
}

// NewBuilder wires a builder. A nil zone falls back to UTC; production
// callers always pass the configured business zone.
func NewBuilder(source EventSource, rules engine.Rules, zone *time.Location) *Builder {
	if zone == nil {
		zone = time.UTC
	}
	return &Builder{Source: source, Rules: rules, Zone: zone}
}

// staffResult carries one staff member's slice of the pipeline output.
type staffResult struct {
	shifts    []engine.WorkShift
	anomalies []engine.Anomaly
	analytics engine.StaffTimeAnalytics
}

// Build runs the full pipeline for one query.
//
// Error semantics follow the engine taxonomy: invalid rules and an invalid
// window are hard failures (nothing partial is returned); everything the
// source hands back after that always produces a Report, with malformed
// events and structural anomalies reported inside it.
func (b *Builder) Build(ctx context.Context, req Request) (*Report, error) {
	if err := b.Rules.Validate(); err != nil {
		return nil, err
	}
	if err := req.Window.Validate(); err != nil {
		return nil, err
	}

	events, err := b.Source.EventsInRange(ctx, req.Window, req.StaffIDs)
	if err != nil {
		return nil, err
	}

	byStaff, issues := engine.Normalize(events, req.Window)

	// Stable fan-out order: staff ids sorted ascending.
	staffIDs := make([]engine.StaffID, 0, len(byStaff))
	for id := range byStaff {
		staffIDs = append(staffIDs, id)
	}
	sort.Slice(staffIDs, func(i, j int) bool { return staffIDs[i] < staffIDs[j] })

	results := make([]staffResult, len(staffIDs))
	var wg sync.WaitGroup
	for i, id := range staffIDs {
		wg.Add(1)
		go func(i int, stream []engine.ClockEvent) {
			defer wg.Done()
			shifts, anomalies := engine.ReconstructShifts(stream, b.Rules, b.Zone)
			results[i] = staffResult{
				shifts:    shifts,
				anomalies: anomalies,
				analytics: engine.Aggregate(stream[0].StaffID, stream[0].StaffName, shifts, stream),
			}
		}(i, byStaff[id])
	}
	wg.Wait()

	rep := &Report{
		Window:      req.Window,
		GeneratedAt: req.AsOf,
		Rules:       b.Rules,
		Issues:      issues,
	}
	for _, res := range results {
		rep.Shifts = append(rep.Shifts, res.shifts...)
		rep.Anomalies = append(rep.Anomalies, res.anomalies...)
		rep.Analytics = append(rep.Analytics, res.analytics)
	}

	// Display order: newest clock-in first; ties break on staff id then
	// event id so repeated runs produce identical output.
	sort.SliceStable(rep.Shifts, func(i, j int) bool {
		si, sj := &rep.Shifts[i], &rep.Shifts[j]
		if !si.ClockIn.Equal(sj.ClockIn) {
			return si.ClockIn.After(sj.ClockIn)
		}
		if si.StaffID != sj.StaffID {
			return si.StaffID < sj.StaffID
		}
		return si.ClockInEventID < sj.ClockInEventID
	})
	sort.SliceStable(rep.Anomalies, func(i, j int) bool {
		if !rep.Anomalies[i].At.Equal(rep.Anomalies[j].At) {
			return rep.Anomalies[i].At.Before(rep.Anomalies[j].At)
		}
		return rep.Anomalies[i].EventID < rep.Anomalies[j].EventID
	})

	return rep, nil
}
