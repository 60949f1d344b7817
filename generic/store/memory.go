// Package store provides RunStore implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	runs map[generic.RunID]generic.Run
}

func NewMemory() *Memory {
	return &Memory{
		runs: make(map[generic.RunID]generic.Run),
	}
}

func (m *Memory) SaveRun(_ context.Context, run generic.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = cloneRun(run)
	return nil
}

func (m *Memory) GetRun(_ context.Context, id generic.RunID) (*generic.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, generic.ErrRunNotFound
	}
	out := cloneRun(run)
	return &out, nil
}

func (m *Memory) ListRuns(_ context.Context, limit int) ([]generic.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]generic.Run, 0, len(m.runs))
	for _, run := range m.runs {
		result = append(result, cloneRun(run))
	}
	// Newest first; id breaks ties so the order is stable.
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *Memory) DeleteRun(_ context.Context, id generic.RunID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.runs[id]; !ok {
		return generic.ErrRunNotFound
	}
	delete(m.runs, id)
	return nil
}

func (m *Memory) PruneRuns(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id, run := range m.runs {
		if run.CreatedAt.Before(cutoff) {
			delete(m.runs, id)
			pruned++
		}
	}
	return pruned, nil
}

// cloneRun copies the byte slices so callers cannot mutate stored state.
func cloneRun(run generic.Run) generic.Run {
	run.RequestJSON = append([]byte(nil), run.RequestJSON...)
	run.ReportJSON = append([]byte(nil), run.ReportJSON...)
	if run.ProvisionAsOf != nil {
		asOf := *run.ProvisionAsOf
		run.ProvisionAsOf = &asOf
	}
	return run
}
