/*
Package sqlite provides the SQLite-backed clock event store.

PURPOSE:
  Persists the immutable clock event log and serves the read path the
  reporting engine consumes. Capture is external to this repo: the only
  writes here are scenario seeding and tests. In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

APPEND-ONLY ENFORCEMENT:
  clock_events is a log of facts:
  - No UPDATE statements
  - No row-level DELETE (Reset wipes the whole table for demo reloads only)

KEY TABLES:
  clock_events: One row per punch, as delivered by the capture system

INDEXES:
  idx_events_staff_time: Per-staff window queries (hot path)
  idx_events_time:       Window-wide queries

TIMESTAMPS:
  Stored as RFC3339 normalized to UTC, so lexicographic range scans and
  instant range scans agree. Read paths convert into the business zone.
  Rows whose stored timestamp no longer parses are returned with a zero
  Timestamp rather than failing the query; the engine's normalizer excludes
  and flags them, which keeps a single bad row from sinking a whole payroll
  report.

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't block,
  single writer at a time.

USAGE:
  store, err := sqlite.New("./data/timeclock.db", zone)
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  builder := report.NewBuilder(store, rules, zone)

SEE ALSO:
  - report: EventSource interface this store implements
  - store/memory: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lengolf/timeclock-engine/engine"
)

// Store implements report.EventSource over SQLite.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	zone *time.Location
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database. Returned timestamps are
// converted into zone, the business time zone.
func New(dbPath string, zone *time.Location) (*Store, error) {
	if zone == nil {
		zone = time.UTC
	}
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, zone: zone}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Immutable punch log, written by the external capture system
	CREATE TABLE IF NOT EXISTS clock_events (
		id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL,
		staff_name TEXT NOT NULL,
		action TEXT NOT NULL,
		clocked_at TEXT NOT NULL,
		photo_captured INTEGER NOT NULL DEFAULT 0,
		camera_error TEXT,
		created_at TEXT NOT NULL
	);

	-- Per-staff window queries (hot path for reconstruction)
	CREATE INDEX IF NOT EXISTS idx_events_staff_time
		ON clock_events(staff_id, clocked_at);

	-- Window-wide queries
	CREATE INDEX IF NOT EXISTS idx_events_time
		ON clock_events(clocked_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// WRITES - Scenario seeding and tests only
// =============================================================================

// InsertEvents appends a batch of events atomically.
func (s *Store) InsertEvents(ctx context.Context, events []engine.ClockEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO clock_events
			(id, staff_id, staff_name, action, clocked_at, photo_captured, camera_error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, ev := range events {
		var cameraErr any
		if ev.CameraError != "" {
			cameraErr = ev.CameraError
		}
		photo := 0
		if ev.PhotoCaptured {
			photo = 1
		}
		if _, err := stmt.ExecContext(ctx,
			string(ev.ID), string(ev.StaffID), ev.StaffName, string(ev.Action),
			ev.Timestamp.UTC().Format(time.RFC3339), photo, cameraErr, now,
		); err != nil {
			return fmt.Errorf("failed to insert event %s: %w", ev.ID, err)
		}
	}
	return tx.Commit()
}

// Reset clears all events. Demo scenario reloads only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `DELETE FROM clock_events`)
	return err
}

// =============================================================================
// READS - The engine's consumption path
// =============================================================================

// EventsInRange returns events whose timestamp falls inside the window,
// optionally filtered to the given staff ids. Implements report.EventSource.
func (s *Store) EventsInRange(ctx context.Context, window engine.Window, staffIDs []engine.StaffID) ([]engine.ClockEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, staff_id, staff_name, action, clocked_at, photo_captured, camera_error
		FROM clock_events
		WHERE clocked_at >= ? AND clocked_at <= ?`
	args := []any{
		window.Start.UTC().Format(time.RFC3339),
		window.End.UTC().Format(time.RFC3339),
	}

	if len(staffIDs) > 0 {
		placeholders := make([]string, len(staffIDs))
		for i, id := range staffIDs {
			placeholders[i] = "?"
			args = append(args, string(id))
		}
		query += " AND staff_id IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY clocked_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []engine.ClockEvent
	for rows.Next() {
		var (
			ev        engine.ClockEvent
			id        string
			staffID   string
			action    string
			clockedAt string
			photo     int
			cameraErr sql.NullString
		)
		if err := rows.Scan(&id, &staffID, &ev.StaffName, &action, &clockedAt, &photo, &cameraErr); err != nil {
			return nil, err
		}
		ev.ID = engine.EventID(id)
		ev.StaffID = engine.StaffID(staffID)
		ev.Action = engine.Action(action)
		ev.PhotoCaptured = photo != 0
		ev.CameraError = cameraErr.String

		// A row that no longer parses becomes a zero-timestamp event; the
		// normalizer excludes and flags it instead of failing the batch.
		if t, err := time.Parse(time.RFC3339, clockedAt); err == nil {
			ev.Timestamp = t.In(s.zone)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// StaffRecord is one row of the staff directory derived from the event log.
type StaffRecord struct {
	ID         engine.StaffID
	Name       string
	EventCount int
	LastSeen   time.Time
}

// StaffDirectory lists every staff member present in the event log, with
// their most recent punch. The roster itself is owned by the external staff
// management system; this is just what the log has seen.
func (s *Store) StaffDirectory(ctx context.Context) ([]StaffRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT staff_id, MAX(staff_name), COUNT(*), MAX(clocked_at)
		FROM clock_events
		GROUP BY staff_id
		ORDER BY staff_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []StaffRecord
	for rows.Next() {
		var (
			rec      StaffRecord
			id       string
			lastSeen string
		)
		if err := rows.Scan(&id, &rec.Name, &rec.EventCount, &lastSeen); err != nil {
			return nil, err
		}
		rec.ID = engine.StaffID(id)
		if t, err := time.Parse(time.RFC3339, lastSeen); err == nil {
			rec.LastSeen = t.In(s.zone)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
