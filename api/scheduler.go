/*
scheduler.go - Automated run-cache pruning

PURPOSE:
  Every generate request leaves a cached run behind so its CSV can be
  downloaded later. The pruner periodically deletes runs older than the
  retention window so the cache stays bounded for long-lived servers.

DESIGN:
  - robfig/cron drives the job; the schedule accepts cron expressions and
    descriptors such as "@every 15m"
  - Each tick deletes runs with created_at < now - Retention
  - Retention <= 0 disables the pruner entirely

CONFIGURATION:
  - runs.retention:  How long a run is kept (default: 24h, 0 disables)
  - runs.prune_cron: When to prune (default: @every 15m)

USAGE:
  pruner := NewRunPruner(store, 24*time.Hour, "@every 15m", log)
  if err := pruner.Start(); err != nil { ... }
  // ... later
  pruner.Stop()

SEE ALSO:
  - generic/store.go: RunStore.PruneRuns
  - internal/config: Retention settings
*/
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/warp/depreciation-engine/generic"
)

// pruneTimeout bounds a single pruning pass.
const pruneTimeout = 1 * time.Minute

// RunPruner deletes expired runs on a cron schedule.
type RunPruner struct {
	Store     generic.RunStore
	Retention time.Duration
	Schedule  string
	Log       logrus.FieldLogger

	// Now is replaceable in tests.
	Now func() time.Time

	cron *cron.Cron
	mu   sync.Mutex
}

// NewRunPruner creates a pruner. It does nothing until Start is called.
func NewRunPruner(store generic.RunStore, retention time.Duration, schedule string, log logrus.FieldLogger) *RunPruner {
	return &RunPruner{
		Store:     store,
		Retention: retention,
		Schedule:  schedule,
		Log:       log,
		Now:       time.Now,
	}
}

// Start registers the pruning job and starts the cron engine.
func (p *RunPruner) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Retention <= 0 {
		p.Log.Info("run pruner disabled (retention <= 0)")
		return nil
	}
	if p.cron != nil {
		return nil
	}

	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(p.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		defer cancel()
		if _, err := p.PruneOnce(ctx); err != nil {
			p.Log.WithError(err).Error("run pruning failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", p.Schedule, err)
	}

	c.Start()
	p.cron = c
	p.Log.WithFields(logrus.Fields{
		"schedule":  p.Schedule,
		"retention": p.Retention.String(),
	}).Info("run pruner started")
	return nil
}

// Stop halts the cron engine and waits for a running pass to finish.
func (p *RunPruner) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	p.Log.Info("run pruner stopped")
}

// PruneOnce deletes every run older than the retention window and returns
// how many were removed.
func (p *RunPruner) PruneOnce(ctx context.Context) (int, error) {
	if p.Retention <= 0 {
		return 0, nil
	}

	cutoff := p.Now().Add(-p.Retention)
	n, err := p.Store.PruneRuns(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		p.Log.WithFields(logrus.Fields{
			"pruned": n,
			"cutoff": cutoff.UTC().Format(time.RFC3339),
		}).Info("pruned expired runs")
	}
	return n, nil
}
