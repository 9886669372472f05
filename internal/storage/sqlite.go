// Package storage keeps the records of finished Flood Escape runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only summaries of ended episodes are stored; a run in progress is never
// persisted.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/flood-escape/internal/core"
)

const timeLayout = "2006-01-02 15:04:05"

// Run outcomes as stored in the outcome column.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// Run is one finished episode.
type Run struct {
	ID        string
	Variant   string
	Outcome   string
	Elapsed   time.Duration
	Seed      int64
	Bubbles   int
	Drains    int
	CreatedAt time.Time
}

// RunFromSummary converts a finished-episode summary into a record.
func RunFromSummary(s core.RunSummary) Run {
	return Run{
		Variant:   s.Variant,
		Outcome:   s.Outcome,
		Elapsed:   s.Elapsed,
		Seed:      s.Seed,
		Bubbles:   s.Bubbles,
		Drains:    s.Drains,
		CreatedAt: s.Finished,
	}
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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			outcome TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			bubbles INTEGER NOT NULL DEFAULT 0,
			drains INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(variant, outcome, elapsed_ms);
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

// SaveRun records a finished run and returns its ID.
// A missing ID is generated; a zero CreatedAt means now.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.Outcome != OutcomeWon && r.Outcome != OutcomeLost {
		return "", fmt.Errorf("storage: invalid outcome %q", r.Outcome)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, variant, outcome, elapsed_ms, seed, bubbles, drains, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Variant, r.Outcome, r.Elapsed.Milliseconds(), r.Seed, r.Bubbles, r.Drains,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, variant, outcome, elapsed_ms, seed, bubbles, drains, created_at`

// BestTimes returns the fastest escapes for a variant, quickest first.
func (s *Store) BestTimes(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE variant = ? AND outcome = ?
		 ORDER BY elapsed_ms ASC, created_at ASC
		 LIMIT ?`,
		variant, OutcomeWon, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best times: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns returns the latest runs, newest first. An empty variant
// selects every variant.
func (s *Store) RecentRuns(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR variant = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID returns the run with the given ID, or nil if there is none.
func (s *Store) RunByID(id string) (*Run, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Variant, &r.Outcome, &elapsedMS, &r.Seed, &r.Bubbles, &r.Drains, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both driver-decoded times and raw strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ClearRuns deletes every run of the given variant.
func (s *Store) ClearRuns(variant string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// VariantStats contains aggregated statistics for one variant.
type VariantStats struct {
	Variant    string
	Runs       int
	Wins       int
	Losses     int
	BestTime   time.Duration // Zero when never won
	AvgWinTime time.Duration
	Bubbles    int // Total collected over every run
	LastPlayed time.Time
}

// WinRate returns the share of runs that ended in an escape, 0..1.
func (v VariantStats) WinRate() float64 {
	if v.Runs == 0 {
		return 0
	}
	return float64(v.Wins) / float64(v.Runs)
}

const statsQuery = `
	SELECT variant,
	       COUNT(*),
	       COALESCE(SUM(outcome = 'won'), 0),
	       COALESCE(SUM(outcome = 'lost'), 0),
	       COALESCE(MIN(CASE WHEN outcome = 'won' THEN elapsed_ms END), 0),
	       COALESCE(AVG(CASE WHEN outcome = 'won' THEN elapsed_ms END), 0),
	       COALESCE(SUM(bubbles), 0),
	       MAX(created_at)
	FROM runs`

// Stats returns aggregated statistics for a variant. A variant with no runs
// yields zero stats, not an error.
func (s *Store) Stats(variant string) (*VariantStats, error) {
	rows, err := s.db.Query(statsQuery+` WHERE variant = ? GROUP BY variant`, variant)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	all, err := scanStats(rows)
	if err != nil {
		return nil, err
	}
	if st, ok := all[variant]; ok {
		return st, nil
	}
	return &VariantStats{Variant: variant}, nil
}

// AllStats returns statistics for every variant that has been played.
func (s *Store) AllStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(statsQuery + ` GROUP BY variant`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	return scanStats(rows)
}

func scanStats(rows *sql.Rows) (map[string]*VariantStats, error) {
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var st VariantStats
		var bestMS int64
		var avgMS float64
		var lastPlayed any
		if err := rows.Scan(&st.Variant, &st.Runs, &st.Wins, &st.Losses, &bestMS, &avgMS, &st.Bubbles, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.BestTime = time.Duration(bestMS) * time.Millisecond
		st.AvgWinTime = time.Duration(avgMS * float64(time.Millisecond))
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Variant] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
