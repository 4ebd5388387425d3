/*
analytics.go - Per-staff aggregation over a reporting window

PURPOSE:
  Rolls one staff member's shifts and raw events up into a single
  StaffTimeAnalytics record: totals, extremes, compliance rates, issue
  counts. Computed fresh from the inputs on every call - nothing is cached.

COMPUTATION NOTES:
  - Hour sums cover COMPLETE shifts only. Incomplete shifts stay visible in
    the shift counts but contribute zero hours.
  - DaysWorked counts distinct anchor dates across ALL shifts (an unclosed
    shift still means the person showed up that day).
  - TotalHours is built as RegularHours + OvertimeHours so the invariant
    holds exactly in decimal arithmetic, rather than converting the three
    minute totals independently and accumulating rounding skew.
  - PhotoComplianceRate runs over raw events (both punch directions), so it
    reflects operational compliance independent of shift completeness.
  - Guarded divisions: averages and rates are defined as zero when their
    denominator is zero, never a division error.

GUARANTEE:
  The aggregator only sees one staff member's data. Analytics are
  independent per staff and can be computed in isolation (or in parallel).

SEE ALSO:
  - reconstruct.go: Produces the shifts this file consumes
  - report package: Fans aggregation out across staff members
*/
package engine

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Aggregate computes the window summary for one staff member from their
// reconstructed shifts and their raw events.
func Aggregate(staffID StaffID, staffName string, shifts []WorkShift, events []ClockEvent) StaffTimeAnalytics {
	a := StaffTimeAnalytics{
		StaffID:   staffID,
		StaffName: staffName,
	}

	var (
		netTotal      int
		regularTotal  int
		overtimeTotal int
		longestNet    int
		shortestNet   int
		daysSeen      = make(map[Date]bool)
	)

	for i := range shifts {
		s := &shifts[i]
		a.TotalShifts++
		daysSeen[s.AnchorDate] = true
		if s.HasIssues() {
			a.ShiftsWithIssues++
		}
		if !s.IsComplete {
			a.IncompleteShifts++
			continue
		}

		a.CompleteShifts++
		netTotal += s.NetMinutes
		regularTotal += s.RegularMinutes()
		overtimeTotal += s.OvertimeMinutes
		a.TotalBreakMinutes += s.BreakMinutes

		if a.CompleteShifts == 1 || s.NetMinutes > longestNet {
			longestNet = s.NetMinutes
		}
		if a.CompleteShifts == 1 || s.NetMinutes < shortestNet {
			shortestNet = s.NetMinutes
		}
	}

	a.DaysWorked = len(daysSeen)
	a.RegularHours = MinutesToHours(regularTotal)
	a.OvertimeHours = MinutesToHours(overtimeTotal)
	a.TotalHours = a.RegularHours.Add(a.OvertimeHours)

	if a.CompleteShifts > 0 {
		a.AverageShiftHours = MinutesToHours(netTotal).Div(decimal.NewFromInt(int64(a.CompleteShifts)))
		a.LongestShiftHours = MinutesToHours(longestNet)
		a.ShortestShiftHours = MinutesToHours(shortestNet)
	}

	if len(events) > 0 {
		withPhoto := 0
		for _, ev := range events {
			if ev.PhotoCaptured {
				withPhoto++
			}
		}
		a.PhotoComplianceRate = decimal.NewFromInt(int64(withPhoto)).
			Mul(oneHundred).
			Div(decimal.NewFromInt(int64(len(events))))
	}

	return a
}
