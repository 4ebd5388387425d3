package engine

import "fmt"

// FormatDuration renders a minute count as a human-readable "Xh Ym" string.
// Total over non-negative inputs: 0 renders as "0h 0m" and multi-day counts
// (>= 1440) keep accumulating hours rather than rolling into days. Negative
// inputs clamp to zero; durations in this system are never negative.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
