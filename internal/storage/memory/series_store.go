// Package memory provides in-memory storage implementations for tests
// and dry runs.
package memory

import (
	"context"
	"sync"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/storage"
)

// SeriesStore is an in-memory implementation of storage.SeriesStore.
type SeriesStore struct {
	mu     sync.RWMutex
	series domain.Series
	saves  int
}

// NewSeriesStore creates an empty in-memory series store.
func NewSeriesStore() *SeriesStore {
	return &SeriesStore{}
}

// Compile-time interface check.
var _ storage.SeriesStore = (*SeriesStore)(nil)

// Load returns a copy of the held series.
func (s *SeriesStore) Load(_ context.Context) (domain.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(domain.Series, len(s.series))
	copy(out, s.series)
	return out, nil
}

// Save replaces the held series with a canonicalized copy.
func (s *SeriesStore) Save(_ context.Context, series domain.Series) (int, error) {
	canonical := domain.NewSeries(series)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.series = canonical
	s.saves++
	return len(canonical), nil
}

// SaveCount returns how many times Save has been called. Test helper.
func (s *SeriesStore) SaveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
