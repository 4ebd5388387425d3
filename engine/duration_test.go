package engine_test

import (
	"errors"
	"testing"

	"github.com/lengolf/timeclock-engine/engine"
)

// =============================================================================
// DURATION BREAKDOWN
// =============================================================================

func TestComputeDurations_BreakDeduction(t *testing.T) {
	cases := []struct {
		name     string
		raw      int
		breakMin int
		net      int
		overtime int
	}{
		{"below break eligibility", 300, 0, 300, 0},
		{"exactly eligible", 360, 60, 300, 0},
		{"standard day", 480, 60, 420, 0},
		{"overtime day", 720, 60, 660, 180},
		{"zero raw", 0, 0, 0, 0},
		{"exactly regular after break", 540, 60, 480, 0},
		{"one minute into overtime", 541, 60, 481, 1},
	}

	rules := testRules()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := engine.ComputeDurations(tc.raw, rules)
			if d.BreakMinutes != tc.breakMin {
				t.Errorf("break: expected %d, got %d", tc.breakMin, d.BreakMinutes)
			}
			if d.NetMinutes != tc.net {
				t.Errorf("net: expected %d, got %d", tc.net, d.NetMinutes)
			}
			if d.OvertimeMinutes != tc.overtime {
				t.Errorf("overtime: expected %d, got %d", tc.overtime, d.OvertimeMinutes)
			}
			// Conservation must hold for every input.
			if d.RawMinutes != d.NetMinutes+d.BreakMinutes {
				t.Errorf("raw != net + break: %d != %d + %d", d.RawMinutes, d.NetMinutes, d.BreakMinutes)
			}
			if d.NetMinutes != d.RegularMinutes()+d.OvertimeMinutes {
				t.Errorf("net != regular + overtime")
			}
		})
	}
}

func TestComputeDurations_DeductionLargerThanShift(t *testing.T) {
	// GIVEN: A deduction that exceeds the raw length once eligible
	// THEN: Net floors at zero and conservation still holds

	rules := engine.Rules{BreakEligibleMinutes: 30, BreakDeductionMinutes: 60, DailyRegularMinutes: 480}
	d := engine.ComputeDurations(40, rules)

	if d.NetMinutes != 0 {
		t.Errorf("expected net 0, got %d", d.NetMinutes)
	}
	if d.RawMinutes != d.NetMinutes+d.BreakMinutes {
		t.Errorf("conservation violated: raw=%d net=%d break=%d", d.RawMinutes, d.NetMinutes, d.BreakMinutes)
	}
}

func TestComputeDurations_Deterministic(t *testing.T) {
	rules := testRules()
	a := engine.ComputeDurations(510, rules)
	b := engine.ComputeDurations(510, rules)
	if a != b {
		t.Errorf("same input, same rules, different output: %+v vs %+v", a, b)
	}
}

// =============================================================================
// RULES VALIDATION
// =============================================================================

func TestRules_Validate(t *testing.T) {
	cases := []struct {
		name  string
		rules engine.Rules
		ok    bool
	}{
		{"defaults are valid", engine.DefaultRules(), true},
		{"zero value is invalid", engine.Rules{}, false},
		{"zero break eligibility", engine.Rules{BreakDeductionMinutes: 60, DailyRegularMinutes: 480}, false},
		{"negative deduction", engine.Rules{BreakEligibleMinutes: 360, BreakDeductionMinutes: -1, DailyRegularMinutes: 480}, false},
		{"zero deduction is allowed", engine.Rules{BreakEligibleMinutes: 360, DailyRegularMinutes: 480}, true},
		{"missing regular day", engine.Rules{BreakEligibleMinutes: 360, BreakDeductionMinutes: 60}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rules.Validate()
			if tc.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, engine.ErrInvalidRules) {
					t.Errorf("error should wrap ErrInvalidRules, got %v", err)
				}
				if !engine.IsConfigError(err) {
					t.Error("IsConfigError should report true")
				}
				var re *engine.RuleError
				if !errors.As(err, &re) {
					t.Errorf("expected a RuleError, got %T", err)
				}
			}
		})
	}
}
