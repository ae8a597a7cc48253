package memory

import (
	"context"
	"sort"
	"sync"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/storage"
)

type archivedObservation struct {
	runSeq int
	obs    domain.Observation
}

// ObservationArchive is an in-memory implementation of
// storage.ObservationArchive.
type ObservationArchive struct {
	mu      sync.RWMutex
	entries []archivedObservation
	runSeq  map[string]int
}

// NewObservationArchive creates an empty in-memory archive.
func NewObservationArchive() *ObservationArchive {
	return &ObservationArchive{runSeq: make(map[string]int)}
}

// Compile-time interface check.
var _ storage.ObservationArchive = (*ObservationArchive)(nil)

// ArchiveRun appends the observations of one run.
func (a *ObservationArchive) ArchiveRun(_ context.Context, runID string, series domain.Series) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	seq, ok := a.runSeq[runID]
	if !ok {
		seq = len(a.runSeq)
		a.runSeq[runID] = seq
	}
	for _, o := range series {
		a.entries = append(a.entries, archivedObservation{runSeq: seq, obs: o})
	}
	return nil
}

// GetByDateRange retrieves archived observations within [from, to]
// (inclusive), latest run winning per date, ordered by date ASC.
func (a *ObservationArchive) GetByDateRange(_ context.Context, from, to domain.Date) (domain.Series, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	latest := make(map[domain.Date]archivedObservation)
	for _, e := range a.entries {
		d := e.obs.Date
		if d.Before(from) || to.Before(d) {
			continue
		}
		if cur, ok := latest[d]; !ok || e.runSeq >= cur.runSeq {
			latest[d] = e
		}
	}

	out := make(domain.Series, 0, len(latest))
	for _, e := range latest {
		out = append(out, e.obs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
