/*
store.go - Persistence interface for cached calculation runs

PURPOSE:
  A "run" is one generate request: the asset inputs as submitted and the
  report computed from them. Runs are cached so a client can render the
  table first and download the CSV afterwards without resubmitting the
  form. The cache is session-scoped: the production wiring opens SQLite
  in memory and a cron job prunes old runs.

KEY INTERFACES:
  RunStore: Save, fetch, list, delete and prune runs

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite (":memory:" by default)
  - generic/store/memory.go: Map-backed, for tests

EXAMPLE:
  run := generic.Run{ID: "…", CreatedAt: time.Now(), RequestJSON: body}
  if err := store.SaveRun(ctx, run); err != nil { ... }
  got, err := store.GetRun(ctx, run.ID)
  if errors.Is(err, generic.ErrRunNotFound) { ... }

SEE ALSO:
  - api/handlers.go: Saves a run per generate request
  - api/scheduler.go: Prunes expired runs
*/
package generic

import (
	"context"
	"time"
)

// =============================================================================
// RUN - One cached generate request
// =============================================================================

// Run is a cached calculation. RequestJSON is the canonical request body;
// ReportJSON the computed report. Both are opaque to the store.
type Run struct {
	ID                RunID
	CreatedAt         time.Time
	AssetCount        int
	Currency          string
	ProvisionAsOf     *TimePoint
	TotalDepreciation Money
	RequestJSON       []byte
	ReportJSON        []byte
}

// =============================================================================
// RUN STORE
// =============================================================================

// RunStore persists runs for the lifetime of the process.
type RunStore interface {
	// SaveRun inserts or replaces a run.
	SaveRun(ctx context.Context, run Run) error

	// GetRun returns ErrRunNotFound for unknown ids.
	GetRun(ctx context.Context, id RunID) (*Run, error)

	// ListRuns returns the most recent runs first. limit <= 0 means no limit.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// DeleteRun returns ErrRunNotFound for unknown ids.
	DeleteRun(ctx context.Context, id RunID) error

	// PruneRuns deletes runs created before cutoff and reports how many.
	PruneRuns(ctx context.Context, cutoff time.Time) (int, error)
}
