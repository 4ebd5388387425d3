package engine_test

import (
	"testing"

	"github.com/lengolf/timeclock-engine/engine"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{1, "0h 1m"},
		{59, "0h 59m"},
		{60, "1h 0m"},
		{61, "1h 1m"},
		{420, "7h 0m"},
		{485, "8h 5m"},
		{1440, "24h 0m"},   // exactly one day
		{1501, "25h 1m"},   // multi-day counts keep accumulating hours
		{10080, "168h 0m"}, // a full week
		{-5, "0h 0m"},      // negative clamps, never panics
	}

	for _, tc := range cases {
		if got := engine.FormatDuration(tc.minutes); got != tc.want {
			t.Errorf("FormatDuration(%d): expected %q, got %q", tc.minutes, tc.want, got)
		}
	}
}
