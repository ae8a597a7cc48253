package memory

import (
	"context"
	"sync"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/storage"
)

// RunStore is an in-memory implementation of storage.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs []*domain.RunRecord
}

// NewRunStore creates an empty in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{}
}

// Compile-time interface check.
var _ storage.RunStore = (*RunStore)(nil)

// RecordRun persists a run summary.
func (s *RunStore) RecordRun(_ context.Context, rec *domain.RunRecord) error {
	if rec == nil || rec.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recCopy := *rec
	s.runs = append(s.runs, &recCopy)
	return nil
}

// GetRecent retrieves the most recent run summaries, newest first.
func (s *RunStore) GetRecent(_ context.Context, limit int) ([]*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.RunRecord
	for i := len(s.runs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		recCopy := *s.runs[i]
		out = append(out, &recCopy)
	}
	return out, nil
}
