package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lengolf/timeclock-engine/engine"
	"github.com/lengolf/timeclock-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var bkk = time.FixedZone("ICT", 7*3600)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:", bkk)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, bkk)
}

func ev(id string, staff engine.StaffID, name string, action engine.Action, ts time.Time, photo bool) engine.ClockEvent {
	return engine.ClockEvent{
		ID: engine.EventID(id), StaffID: staff, StaffName: name,
		Action: action, Timestamp: ts, PhotoCaptured: photo,
	}
}

func window(t *testing.T, from, to time.Time) engine.Window {
	t.Helper()
	w, err := engine.NewWindow(from, to)
	require.NoError(t, err)
	return w
}

// =============================================================================
// ROUND TRIP
// =============================================================================

func TestStore_InsertAndQueryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := ev("e1", "s1", "Dolly", engine.ActionClockIn, at(10, 9, 0), true)
	out := ev("e2", "s1", "Dolly", engine.ActionClockOut, at(10, 17, 0), false)
	out.CameraError = "camera unavailable"

	require.NoError(t, store.InsertEvents(ctx, []engine.ClockEvent{in, out}))

	got, err := store.EventsInRange(ctx, window(t, at(1, 0, 0), at(31, 23, 59)), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, engine.EventID("e1"), got[0].ID)
	assert.Equal(t, engine.ActionClockIn, got[0].Action)
	assert.True(t, got[0].PhotoCaptured)
	assert.True(t, got[0].Timestamp.Equal(at(10, 9, 0)), "instant must survive the round trip")
	assert.Equal(t, bkk.String(), got[0].Timestamp.Location().String(),
		"timestamps come back in the business zone")

	assert.False(t, got[1].PhotoCaptured)
	assert.Equal(t, "camera unavailable", got[1].CameraError)
}

func TestStore_WindowBoundsInclusive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertEvents(ctx, []engine.ClockEvent{
		ev("before", "s1", "Dolly", engine.ActionClockIn, at(9, 23, 59), true),
		ev("on-start", "s1", "Dolly", engine.ActionClockIn, at(10, 0, 0), true),
		ev("inside", "s1", "Dolly", engine.ActionClockOut, at(10, 12, 0), true),
		ev("on-end", "s1", "Dolly", engine.ActionClockIn, at(11, 0, 0), true),
		ev("after", "s1", "Dolly", engine.ActionClockIn, at(11, 0, 1), true),
	}))

	got, err := store.EventsInRange(ctx, window(t, at(10, 0, 0), at(11, 0, 0)), nil)
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, e := range got {
		ids[i] = string(e.ID)
	}
	assert.Equal(t, []string{"on-start", "inside", "on-end"}, ids)
}

func TestStore_StaffFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertEvents(ctx, []engine.ClockEvent{
		ev("e1", "s1", "Dolly", engine.ActionClockIn, at(10, 9, 0), true),
		ev("e2", "s2", "Net", engine.ActionClockIn, at(10, 10, 0), true),
		ev("e3", "s3", "Ball", engine.ActionClockIn, at(10, 11, 0), true),
	}))

	got, err := store.EventsInRange(ctx, window(t, at(1, 0, 0), at(31, 0, 0)),
		[]engine.StaffID{"s1", "s3"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, engine.StaffID("s1"), got[0].StaffID)
	assert.Equal(t, engine.StaffID("s3"), got[1].StaffID)
}

func TestStore_StaffDirectory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertEvents(ctx, []engine.ClockEvent{
		ev("e1", "s1", "Dolly", engine.ActionClockIn, at(10, 9, 0), true),
		ev("e2", "s1", "Dolly", engine.ActionClockOut, at(10, 17, 0), true),
		ev("e3", "s2", "Net", engine.ActionClockIn, at(12, 10, 0), true),
	}))

	records, err := store.StaffDirectory(ctx)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, engine.StaffID("s1"), records[0].ID)
	assert.Equal(t, "Dolly", records[0].Name)
	assert.Equal(t, 2, records[0].EventCount)
	assert.True(t, records[0].LastSeen.Equal(at(10, 17, 0)))
	assert.Equal(t, 1, records[1].EventCount)
}

func TestStore_ResetClearsEvents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertEvents(ctx, []engine.ClockEvent{
		ev("e1", "s1", "Dolly", engine.ActionClockIn, at(10, 9, 0), true),
	}))
	require.NoError(t, store.Reset(ctx))

	got, err := store.EventsInRange(ctx, window(t, at(1, 0, 0), at(31, 0, 0)), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_DuplicateEventIDRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []engine.ClockEvent{ev("e1", "s1", "Dolly", engine.ActionClockIn, at(10, 9, 0), true)}
	require.NoError(t, store.InsertEvents(ctx, first))

	err := store.InsertEvents(ctx, first)
	assert.Error(t, err, "event ids are primary keys; the log is append-only")
}
