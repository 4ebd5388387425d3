// Package memory provides an in-memory event source for tests and dev.
package memory

import (
	"context"
	"sync"

	"github.com/lengolf/timeclock-engine/engine"
)

// =============================================================================
// MEMORY SOURCE - In-memory implementation (for testing/dev)
// =============================================================================

// Source holds clock events in memory and serves them like the sqlite store
// would. Events are immutable once added.
type Source struct {
	mu     sync.RWMutex
	events []engine.ClockEvent
}

func New(events ...engine.ClockEvent) *Source {
	s := &Source{}
	s.events = append(s.events, events...)
	return s
}

// Add appends events. Append-only; there is no update or delete.
func (s *Source) Add(events ...engine.ClockEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
}

// EventsInRange returns events inside the window, optionally filtered to the
// given staff ids. Order is not guaranteed; normalization sorts.
func (s *Source) EventsInRange(_ context.Context, window engine.Window, staffIDs []engine.StaffID) ([]engine.ClockEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filter map[engine.StaffID]bool
	if len(staffIDs) > 0 {
		filter = make(map[engine.StaffID]bool, len(staffIDs))
		for _, id := range staffIDs {
			filter[id] = true
		}
	}

	var out []engine.ClockEvent
	for _, ev := range s.events {
		if filter != nil && !filter[ev.StaffID] {
			continue
		}
		// Zero timestamps pass through so normalization can flag them.
		if !ev.Timestamp.IsZero() && !window.Contains(ev.Timestamp) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
