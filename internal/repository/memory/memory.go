// Package memory implements the status history in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"pr-review-status/internal/entities"

	"go.uber.org/zap"
)

// Memory keeps the latest record per repository and PR.
type Memory struct {
	log *zap.SugaredLogger

	mu     sync.RWMutex
	latest map[string]entities.StatusRecord
}

// New creates an empty in-memory store.
func New(log *zap.SugaredLogger) *Memory {
	return &Memory{
		log:    log.Named("repo.memory"),
		latest: make(map[string]entities.StatusRecord),
	}
}

// OnStart is a no-op.
func (m *Memory) OnStart(_ context.Context) error { return nil }

// OnStop is a no-op.
func (m *Memory) OnStop(_ context.Context) error { return nil }

// SaveStatuses records each status, replacing older ones for the same PR.
func (m *Memory) SaveStatuses(_ context.Context, records []entities.StatusRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		k := key(r.Repository, r.PullNumber)
		if prev, ok := m.latest[k]; ok && prev.RecordedAt.After(r.RecordedAt) {
			continue
		}
		m.latest[k] = r
	}
	m.log.Debugw("statuses saved", "count", len(records))
	return nil
}

// LatestStatus returns the most recent record for the PR.
func (m *Memory) LatestStatus(_ context.Context, repo string, number int) (*entities.StatusRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.latest[key(repo, number)]
	if !ok {
		return nil, entities.ErrStatusNotFound
	}
	return &r, nil
}

func key(repo string, number int) string {
	return fmt.Sprintf("%s#%d", repo, number)
}
