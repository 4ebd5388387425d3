package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date in the business time zone
// =============================================================================

// Date is a plain calendar date. Shifts are anchored to dates, not instants,
// so the type deliberately carries no clock or zone of its own: the zone is
// applied once, when the date is derived from an instant.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t as seen in the business zone.
func DateOf(t time.Time, zone *time.Location) Date {
	local := t.In(zone)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// =============================================================================
// WINDOW - The reporting period
// =============================================================================

// Window is the inclusive instant range a report covers. Both bounds carry
// their own zone information; comparisons are instant-based.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window and rejects an inverted range.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate checks that the window is well-formed.
func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("%w: missing bound", ErrInvalidWindow)
	}
	if w.End.Before(w.Start) {
		return fmt.Errorf("%w: end %s before start %s",
			ErrInvalidWindow, w.End.Format(time.RFC3339), w.Start.Format(time.RFC3339))
	}
	return nil
}

// Contains reports whether t falls inside the window (inclusive bounds).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w Window) String() string {
	return "[" + w.Start.Format(time.RFC3339) + ", " + w.End.Format(time.RFC3339) + "]"
}
