package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lengolf/timeclock-engine/engine"
)

func reconstructAndAggregate(t *testing.T, events []engine.ClockEvent) engine.StaffTimeAnalytics {
	t.Helper()
	shifts, _ := engine.ReconstructShifts(events, testRules(), bkk)
	return engine.Aggregate("staff-1", "Dolly", shifts, events)
}

func wantDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", name, want, got)
	}
}

func TestAggregate_TwoCleanDays(t *testing.T) {
	// GIVEN: Two 9-17 days (net 420 each under test rules)
	// THEN: 14 total hours, all regular, 2 days worked

	events := []engine.ClockEvent{
		punchIn("e1", at(10, 9, 0)), punchOut("e2", at(10, 17, 0)),
		punchIn("e3", at(11, 9, 0)), punchOut("e4", at(11, 17, 0)),
	}

	a := reconstructAndAggregate(t, events)

	if a.DaysWorked != 2 {
		t.Errorf("expected 2 days worked, got %d", a.DaysWorked)
	}
	if a.TotalShifts != 2 || a.CompleteShifts != 2 || a.IncompleteShifts != 0 {
		t.Errorf("shift counts wrong: %+v", a)
	}
	wantDecimal(t, "total hours", a.TotalHours, "14")
	wantDecimal(t, "regular hours", a.RegularHours, "14")
	wantDecimal(t, "overtime hours", a.OvertimeHours, "0")
	wantDecimal(t, "average", a.AverageShiftHours, "7")
	wantDecimal(t, "longest", a.LongestShiftHours, "7")
	wantDecimal(t, "shortest", a.ShortestShiftHours, "7")
	if a.TotalBreakMinutes != 120 {
		t.Errorf("expected 120 break minutes, got %d", a.TotalBreakMinutes)
	}
}

func TestAggregate_IncompleteShiftsContributeZeroHours(t *testing.T) {
	// GIVEN: One complete day and one unclosed shift
	// THEN: Hours cover only the complete shift; the incomplete one stays
	//       visible in the counts

	events := []engine.ClockEvent{
		punchIn("e1", at(10, 9, 0)), punchOut("e2", at(10, 17, 0)),
		punchIn("e3", at(11, 9, 0)),
	}

	a := reconstructAndAggregate(t, events)

	if a.TotalShifts != 2 || a.CompleteShifts != 1 || a.IncompleteShifts != 1 {
		t.Errorf("counts wrong: total=%d complete=%d incomplete=%d",
			a.TotalShifts, a.CompleteShifts, a.IncompleteShifts)
	}
	wantDecimal(t, "total hours", a.TotalHours, "7")
	if a.ShiftsWithIssues != 1 {
		t.Errorf("open shift should count as having issues, got %d", a.ShiftsWithIssues)
	}
	if a.DaysWorked != 2 {
		t.Errorf("an unclosed shift still marks the day as worked, got %d", a.DaysWorked)
	}
}

func TestAggregate_InvariantTotalEqualsRegularPlusOvertime(t *testing.T) {
	// GIVEN: A mix of regular and overtime days
	// THEN: TotalHours = RegularHours + OvertimeHours, exactly

	events := []engine.ClockEvent{
		punchIn("e1", at(10, 8, 0)), punchOut("e2", at(10, 20, 0)), // overtime
		punchIn("e3", at(11, 9, 0)), punchOut("e4", at(11, 17, 0)),
		punchIn("e5", at(12, 9, 0)), punchOut("e6", at(12, 13, 30)), // short day
	}

	a := reconstructAndAggregate(t, events)

	if !a.TotalHours.Equal(a.RegularHours.Add(a.OvertimeHours)) {
		t.Errorf("total != regular + overtime: %s != %s + %s",
			a.TotalHours, a.RegularHours, a.OvertimeHours)
	}
	if a.CompleteShifts+a.IncompleteShifts != a.TotalShifts {
		t.Error("complete + incomplete != total")
	}
}

func TestAggregate_AggregateConsistency(t *testing.T) {
	// Total hours must equal the sum of net minutes over complete shifts,
	// converted to hours.

	events := []engine.ClockEvent{
		punchIn("e1", at(10, 9, 0)), punchOut("e2", at(10, 17, 0)),
		punchIn("e3", at(11, 8, 0)), punchOut("e4", at(11, 20, 0)),
		punchIn("e5", at(12, 9, 0)), // incomplete, must not count
	}

	shifts, _ := engine.ReconstructShifts(events, testRules(), bkk)
	a := engine.Aggregate("staff-1", "Dolly", shifts, events)

	netSum := 0
	for _, s := range shifts {
		if s.IsComplete {
			netSum += s.NetMinutes
		}
	}
	if !a.TotalHours.Equal(engine.MinutesToHours(netSum)) {
		t.Errorf("total hours %s != net sum %d/60", a.TotalHours, netSum)
	}
}

func TestAggregate_GuardedDivisions(t *testing.T) {
	// GIVEN: Only an incomplete shift (no complete shifts, but events exist)
	// THEN: Averages and extremes are zero, never a division error

	events := []engine.ClockEvent{punchIn("e1", at(10, 9, 0))}
	a := reconstructAndAggregate(t, events)

	wantDecimal(t, "average", a.AverageShiftHours, "0")
	wantDecimal(t, "longest", a.LongestShiftHours, "0")
	wantDecimal(t, "shortest", a.ShortestShiftHours, "0")
	wantDecimal(t, "total", a.TotalHours, "0")
}

func TestAggregate_NoEventsAtAll(t *testing.T) {
	a := engine.Aggregate("staff-1", "Dolly", nil, nil)
	wantDecimal(t, "photo compliance", a.PhotoComplianceRate, "0")
	if a.TotalShifts != 0 || a.DaysWorked != 0 {
		t.Errorf("empty input should aggregate to zeros: %+v", a)
	}
}

func TestAggregate_PhotoComplianceOverRawEvents(t *testing.T) {
	// GIVEN: 4 raw events, 3 with photos, spanning an incomplete shift
	// THEN: 75% - compliance runs over raw events regardless of pairing

	events := []engine.ClockEvent{
		punchIn("e1", at(10, 9, 0)),
		punchOut("e2", at(10, 17, 0)),
		{ID: "e3", StaffID: "staff-1", StaffName: "Dolly", Action: engine.ActionClockIn,
			Timestamp: at(11, 9, 0), PhotoCaptured: false, CameraError: "camera unavailable"},
		punchIn("e4", at(12, 9, 0)),
	}

	a := reconstructAndAggregate(t, events)
	wantDecimal(t, "photo compliance", a.PhotoComplianceRate, "75")
}
