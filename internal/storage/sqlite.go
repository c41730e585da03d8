// Package storage provides the SQLite reload journal: every unit load the
// host attempts and every frame fault it recovers from.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcomes of a reload.
const (
	OutcomeLoaded = "loaded"
	OutcomeFailed = "failed"
)

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// ReloadEntry represents one load attempt.
type ReloadEntry struct {
	ID        int64
	Unit      string
	Path      string
	Outcome   string
	Error     string // Empty when the load succeeded
	CreatedAt time.Time
}

// FaultEntry represents one recovered frame fault.
type FaultEntry struct {
	ID        int64
	Unit      string
	Message   string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS reloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			unit TEXT NOT NULL,
			path TEXT NOT NULL,
			outcome TEXT NOT NULL,
			error TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_reloads_unit ON reloads(unit);

		CREATE TABLE IF NOT EXISTS faults (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			unit TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_faults_unit ON faults(unit);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordReload records a load attempt of unit from path. A nil loadErr
// records a successful load.
// Returns the ID of the inserted record.
func (s *Store) RecordReload(unit, path string, loadErr error) (int64, error) {
	outcome := OutcomeLoaded
	var msg sql.NullString
	if loadErr != nil {
		outcome = OutcomeFailed
		msg = sql.NullString{String: loadErr.Error(), Valid: true}
	}

	result, err := s.db.Exec(
		"INSERT INTO reloads (unit, path, outcome, error) VALUES (?, ?, ?, ?)",
		unit, path, outcome, msg,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record reload: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordFault records a frame fault of unit.
// Returns the ID of the inserted record.
func (s *Store) RecordFault(unit, message string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO faults (unit, message) VALUES (?, ?)",
		unit, message,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record fault: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentReloads retrieves the most recent load attempts, newest first.
func (s *Store) RecentReloads(limit int) ([]ReloadEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, unit, path, outcome, error, created_at
		 FROM reloads
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query reloads: %w", err)
	}
	defer rows.Close()

	var entries []ReloadEntry
	for rows.Next() {
		var e ReloadEntry
		var msg sql.NullString
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Unit, &e.Path, &e.Outcome, &msg, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if msg.Valid {
			e.Error = msg.String
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RecentFaults retrieves the most recent faults, newest first.
func (s *Store) RecentFaults(limit int) ([]FaultEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, unit, message, created_at
		 FROM faults
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query faults: %w", err)
	}
	defer rows.Close()

	var entries []FaultEntry
	for rows.Next() {
		var e FaultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Unit, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// FaultCount returns the number of faults recorded for unit.
func (s *Store) FaultCount(unit string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM faults WHERE unit = ?", unit).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count faults: %w", err)
	}
	return n, nil
}

// UnitStats contains aggregated journal statistics for a unit.
type UnitStats struct {
	Unit       string
	Reloads    int
	Failed     int
	Faults     int
	LastReload time.Time
}

// Stats retrieves aggregated statistics for unit.
func (s *Store) Stats(unit string) (*UnitStats, error) {
	stats := &UnitStats{Unit: unit}

	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(outcome = ?), 0), MAX(created_at)
		 FROM reloads WHERE unit = ?`,
		OutcomeFailed, unit,
	).Scan(&stats.Reloads, &stats.Failed, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get reload stats: %w", err)
	}
	stats.LastReload = parseTime(last)

	if stats.Faults, err = s.FaultCount(unit); err != nil {
		return nil, err
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
