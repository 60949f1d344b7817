/*
Package sqlite provides a SQLite-backed implementation of generic.RunStore.

PURPOSE:
  Caches calculation runs - the submitted request and the computed report -
  so a client can fetch the CSV export after rendering the table. The
  default DSN is ":memory:": the cache lives as long as the process and
  nothing survives a restart.

INTERFACES IMPLEMENTED:
  generic.RunStore: SaveRun, GetRun, ListRuns, DeleteRun, PruneRuns

KEY TABLES:
  runs: one row per generate request, JSON blobs kept verbatim

INDEXES:
  - idx_runs_created_at: newest-first listing and pruning

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. An in-memory SQLite database is
  private to its connection, so the pool is pinned to one connection.

WAL MODE:
  File databases are opened with WAL (Write-Ahead Logging) so readers do
  not block the writer.

USAGE:
  store, err := sqlite.New(":memory:")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  handler := api.NewHandler(store)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - generic/store.go: Interface definition
  - generic/store/memory.go: In-memory implementation for testing
  - api/scheduler.go: Periodic pruning
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/depreciation-engine/generic"
)

// timestampLayout is fixed-width so created_at sorts and compares as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements generic.RunStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ generic.RunStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	dsn := dbPath + "?_foreign_keys=on"
	if dbPath != ":memory:" {
		dsn += "&_journal_mode=WAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
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
	-- Cached calculation runs
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		asset_count INTEGER NOT NULL,
		currency TEXT NOT NULL,
		provision_as_of TEXT,
		total_depreciation TEXT NOT NULL,
		request_json TEXT NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at
		ON runs(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RUN STORE (generic.RunStore interface)
// =============================================================================

// SaveRun inserts a run, replacing any run with the same id.
func (s *Store) SaveRun(ctx context.Context, run generic.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var asOf sql.NullString
	if run.ProvisionAsOf != nil {
		asOf = nullString(run.ProvisionAsOf.String())
	}

	query := `
		INSERT OR REPLACE INTO runs
		(id, created_at, asset_count, currency, provision_as_of, total_depreciation, request_json, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		string(run.ID),
		run.CreatedAt.UTC().Format(timestampLayout),
		run.AssetCount,
		run.Currency,
		asOf,
		run.TotalDepreciation.String(),
		string(run.RequestJSON),
		string(run.ReportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetRun returns a single run.
func (s *Store) GetRun(ctx context.Context, id generic.RunID) (*generic.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, asset_count, currency, provision_as_of, total_depreciation, request_json, report_json
		FROM runs WHERE id = ?
	`, string(id))

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, generic.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]generic.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, created_at, asset_count, currency, provision_as_of, total_depreciation, request_json, report_json
		FROM runs ORDER BY created_at DESC, id ASC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []generic.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(ctx context.Context, id generic.RunID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return generic.ErrRunNotFound
	}
	return nil
}

// PruneRuns deletes runs created before cutoff.
func (s *Store) PruneRuns(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`,
		cutoff.UTC().Format(timestampLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return int(n), nil
}

// =============================================================================
// HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (generic.Run, error) {
	var (
		run                  generic.Run
		id, createdAt, total string
		asOf                 sql.NullString
		request, report      string
	)
	if err := row.Scan(&id, &createdAt, &run.AssetCount, &run.Currency, &asOf, &total, &request, &report); err != nil {
		return generic.Run{}, err
	}

	run.ID = generic.RunID(id)
	created, err := time.Parse(timestampLayout, createdAt)
	if err != nil {
		return generic.Run{}, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = created
	if asOf.Valid {
		tp, err := generic.ParseDate(asOf.String)
		if err != nil {
			return generic.Run{}, fmt.Errorf("invalid provision_as_of %q: %w", asOf.String, err)
		}
		run.ProvisionAsOf = &tp
	}
	run.TotalDepreciation = parseMoney(total)
	run.RequestJSON = []byte(request)
	run.ReportJSON = []byte(report)
	return run, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseMoney(value string) generic.Money {
	m, err := generic.ParseMoney(strings.TrimSpace(value))
	if err != nil {
		return generic.ZeroMoney
	}
	return m
}
