/*
duration.go - Break deduction and overtime split

PURPOSE:
  Given a shift's raw elapsed minutes, applies the unpaid-break deduction
  and splits the net time into regular and overtime portions. This is the
  only file that reads the numeric thresholds, and it reads them exclusively
  from Rules - never from inline constants.

RULE:
  break    = BreakDeductionMinutes   if raw >= BreakEligibleMinutes, else 0
  net      = max(0, raw - break)
  overtime = max(0, net - DailyRegularMinutes)
  regular  = net - overtime

GUARANTEES:
  Deterministic given the same raw minutes and the same Rules; no global
  state is consulted. Conservation holds by construction:
  raw = net + break (when the deduction does not exceed raw) and
  net = regular + overtime always.

SEE ALSO:
  - rules.go: The thresholds
  - reconstruct.go: Calls ComputeDurations when closing a shift
*/
package engine

// DurationBreakdown is the minute accounting for one complete shift.
type DurationBreakdown struct {
	RawMinutes      int
	BreakMinutes    int
	NetMinutes      int
	OvertimeMinutes int
}

// RegularMinutes returns the non-overtime portion of the net time.
func (d DurationBreakdown) RegularMinutes() int {
	return d.NetMinutes - d.OvertimeMinutes
}

// ComputeDurations applies the break and overtime rules to a raw shift
// length. Incomplete shifts never reach this function: they carry no raw
// minutes and contribute zero hours to analytics.
func ComputeDurations(rawMinutes int, rules Rules) DurationBreakdown {
	if rawMinutes < 0 {
		rawMinutes = 0
	}

	breakMinutes := 0
	if rawMinutes >= rules.BreakEligibleMinutes {
		breakMinutes = rules.BreakDeductionMinutes
	}

	net := rawMinutes - breakMinutes
	if net < 0 {
		// Deduction larger than the shift itself; net floors at zero and the
		// recorded break shrinks so raw = net + break still holds.
		net = 0
		breakMinutes = rawMinutes
	}

	overtime := net - rules.DailyRegularMinutes
	if overtime < 0 {
		overtime = 0
	}

	return DurationBreakdown{
		RawMinutes:      rawMinutes,
		BreakMinutes:    breakMinutes,
		NetMinutes:      net,
		OvertimeMinutes: overtime,
	}
}
