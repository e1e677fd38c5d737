/*
Package sqlite provides a SQLite-backed run-history store.

PURPOSE:
  Records every comparison the API serves: the request that was submitted,
  the full result, and summary columns for listing. The engine never reads
  this data - simulations are computed fresh from their inputs every time.
  The store is an audit log of outputs, not simulation state.

KEY TABLE:
  comparison_runs:  One row per POST /api/payoff/compare

APPEND-ONLY:
  Runs are inserted and read, never updated or deleted. A run row is a
  record of what the engine answered at a point in time.

THE hit_ceiling COLUMN:
  When either strategy reaches the month ceiling, the engine silently
  returns whatever state it reached. The API detects that from the payoff
  order length and flags the row, so degraded runs can be found later
  without re-parsing result payloads.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, single writer at a time.

USAGE:
  store, err := sqlite.New("./data/payoff.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - api/handlers.go: Writes a run per comparison, serves run history
*/
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run is one stored comparison run.
type Run struct {
	ID            string
	CreatedAt     time.Time
	DebtCount     int
	ExtraPayment  float64
	InterestSaved float64
	HitCeiling    bool
	RequestJSON   string
	ResultJSON    string
}

// Store persists comparison runs in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
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

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Comparison runs (append-only history)
	CREATE TABLE IF NOT EXISTS comparison_runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		debt_count INTEGER NOT NULL,
		extra_payment REAL NOT NULL,
		interest_saved REAL NOT NULL,
		hit_ceiling INTEGER NOT NULL DEFAULT 0,
		request_json TEXT NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_comparison_runs_created_at
		ON comparison_runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_comparison_runs_hit_ceiling
		ON comparison_runs(hit_ceiling) WHERE hit_ceiling = 1;
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RUN PERSISTENCE
// =============================================================================

// SaveRun inserts a run. ID and CreatedAt are assigned here if unset; the
// stored run is returned.
func (s *Store) SaveRun(ctx context.Context, run Run) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = newRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comparison_runs
			(id, created_at, debt_count, extra_payment, interest_saved, hit_ceiling, request_json, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.DebtCount,
		run.ExtraPayment,
		run.InterestSaved,
		boolToInt(run.HitCeiling),
		run.RequestJSON,
		run.ResultJSON,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to save run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest-first, up to limit (<=0 means a default of 50).
// Payload columns are omitted; use GetRun for the full record.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, debt_count, extra_payment, interest_saved, hit_ceiling
		FROM comparison_runs
		ORDER BY rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			createdAt  string
			hitCeiling int
		)
		if err := rows.Scan(&run.ID, &createdAt, &run.DebtCount, &run.ExtraPayment, &run.InterestSaved, &hitCeiling); err != nil {
			return nil, err
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		run.HitCeiling = hitCeiling != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a run with its request/result payloads, or nil if no run
// has the given id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, debt_count, extra_payment, interest_saved, hit_ceiling, request_json, result_json
		FROM comparison_runs
		WHERE id = ?`, id)

	var (
		run        Run
		createdAt  string
		hitCeiling int
	)
	err := row.Scan(&run.ID, &createdAt, &run.DebtCount, &run.ExtraPayment, &run.InterestSaved, &hitCeiling, &run.RequestJSON, &run.ResultJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	run.HitCeiling = hitCeiling != 0
	return &run, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func newRunID() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return "run-" + hex.EncodeToString(buf)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
