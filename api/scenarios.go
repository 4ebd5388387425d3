/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built punch logs that populate the store with realistic
	data for demos. Each scenario exercises a specific slice of the engine:
	clean pairing, anomaly classification, or cross-midnight handling.

AVAILABLE SCENARIOS:

	standard-week: Two staff, five clean days, one overtime day
	messy-week:    Orphan clock-out, double clock-in, open shift,
	               zero-duration pair, malformed action
	night-shift:   Cross-midnight shifts on consecutive nights

HOW SCENARIOS WORK:
 1. Reset the store (clear all events)
 2. Insert the scenario's punch log, dated relative to "now" so reports
    over the last two weeks always find data

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "standard-week"}

NOTE:

	Scenarios reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: writeJSON/writeError helpers
  - server.go: Route wiring
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lengolf/timeclock-engine/engine"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "standard-week",
		Name:        "Standard Week",
		Description: "Two staff members, five clean shifts each, one overtime day",
	},
	{
		ID:          "messy-week",
		Name:        "Messy Week",
		Description: "Orphan clock-out, missing clock-out, open shift, zero-duration pair, malformed punch",
	},
	{
		ID:          "night-shift",
		Name:        "Night Shift",
		Description: "Cross-midnight shifts on three consecutive nights",
	},
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"scenarios": scenarios,
		"current":   h.currentScenario,
	})
}

// LoadScenario resets the store and seeds the selected punch log.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var events []engine.ClockEvent
	switch req.ScenarioID {
	case "standard-week":
		events = standardWeekEvents(h.Zone)
	case "messy-week":
		events = messyWeekEvents(h.Zone)
	case "night-shift":
		events = nightShiftEvents(h.Zone)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}
	if err := h.Store.InsertEvents(ctx, events); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed events", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]any{
		"loaded": req.ScenarioID,
		"events": len(events),
	})
}

// =============================================================================
// FIXTURE BUILDERS
// =============================================================================

// punch builds one event at the given day offset (relative to a week ago)
// and clock time.
func punch(id string, staffID engine.StaffID, name string, action engine.Action,
	base time.Time, dayOffset, hour, minute int, photo bool) engine.ClockEvent {

	day := base.AddDate(0, 0, dayOffset)
	return engine.ClockEvent{
		ID:            engine.EventID(id),
		StaffID:       staffID,
		StaffName:     name,
		Action:        action,
		Timestamp:     time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()),
		PhotoCaptured: photo,
	}
}

// weekBase returns the Monday-ish start used by the fixtures: seven days ago
// at midnight in the business zone.
func weekBase(zone *time.Location) time.Time {
	now := time.Now().In(zone)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, zone).AddDate(0, 0, -7)
}

func standardWeekEvents(zone *time.Location) []engine.ClockEvent {
	base := weekBase(zone)
	var events []engine.ClockEvent

	// Dolly: five clean 9-5 days, photos captured throughout.
	for d := 0; d < 5; d++ {
		events = append(events,
			punch(fmt.Sprintf("std-dolly-%d-in", d), "staff-001", "Dolly", engine.ActionClockIn, base, d, 9, 0, true),
			punch(fmt.Sprintf("std-dolly-%d-out", d), "staff-001", "Dolly", engine.ActionClockOut, base, d, 17, 0, true),
		)
	}

	// Net: four clean days plus one 8-to-20 overtime day; one punch with a
	// camera failure (photo missing).
	for d := 0; d < 4; d++ {
		events = append(events,
			punch(fmt.Sprintf("std-net-%d-in", d), "staff-002", "Net", engine.ActionClockIn, base, d, 10, 0, true),
			punch(fmt.Sprintf("std-net-%d-out", d), "staff-002", "Net", engine.ActionClockOut, base, d, 18, 0, true),
		)
	}
	events = append(events,
		punch("std-net-4-in", "staff-002", "Net", engine.ActionClockIn, base, 4, 8, 0, true),
		punch("std-net-4-out", "staff-002", "Net", engine.ActionClockOut, base, 4, 20, 0, false),
	)
	events[len(events)-1].CameraError = "camera unavailable"

	return events
}

func messyWeekEvents(zone *time.Location) []engine.ClockEvent {
	base := weekBase(zone)
	return []engine.ClockEvent{
		// Day 0: orphan clock-out with no preceding clock-in.
		punch("msy-1", "staff-003", "Ball", engine.ActionClockOut, base, 0, 9, 0, true),

		// Day 1: clean shift.
		punch("msy-2", "staff-003", "Ball", engine.ActionClockIn, base, 1, 9, 0, true),
		punch("msy-3", "staff-003", "Ball", engine.ActionClockOut, base, 1, 17, 30, true),

		// Day 2: clock-in, then another clock-in next day (missing clock-out).
		punch("msy-4", "staff-003", "Ball", engine.ActionClockIn, base, 2, 9, 0, false),
		punch("msy-5", "staff-003", "Ball", engine.ActionClockIn, base, 3, 9, 0, true),
		punch("msy-6", "staff-003", "Ball", engine.ActionClockOut, base, 3, 17, 0, true),

		// Day 4: zero-duration pair (badge tapped twice).
		punch("msy-7", "staff-003", "Ball", engine.ActionClockIn, base, 4, 12, 0, true),
		punch("msy-8", "staff-003", "Ball", engine.ActionClockOut, base, 4, 12, 0, true),

		// Day 5: still clocked in at end of window.
		punch("msy-9", "staff-003", "Ball", engine.ActionClockIn, base, 5, 9, 0, true),

		// Day 5: a punch with an action tag the engine does not know.
		punch("msy-10", "staff-003", "Ball", engine.Action("break"), base, 5, 12, 0, true),
	}
}

func nightShiftEvents(zone *time.Location) []engine.ClockEvent {
	base := weekBase(zone)
	var events []engine.ClockEvent
	for d := 0; d < 3; d++ {
		events = append(events,
			punch(fmt.Sprintf("ngt-%d-in", d), "staff-004", "Chai", engine.ActionClockIn, base, d, 22, 0, true),
			punch(fmt.Sprintf("ngt-%d-out", d), "staff-004", "Chai", engine.ActionClockOut, base, d+1, 2, 0, true),
		)
	}
	return events
}

// SeedScenario loads a scenario outside the HTTP path (used by main for
// first-run demo setup).
func (h *Handler) SeedScenario(ctx context.Context, scenarioID string) error {
	var events []engine.ClockEvent
	switch scenarioID {
	case "standard-week":
		events = standardWeekEvents(h.Zone)
	case "messy-week":
		events = messyWeekEvents(h.Zone)
	case "night-shift":
		events = nightShiftEvents(h.Zone)
	default:
		return fmt.Errorf("unknown scenario: %s", scenarioID)
	}
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	if err := h.Store.InsertEvents(ctx, events); err != nil {
		return err
	}
	h.currentScenario = scenarioID
	return nil
}
