// Package reconcile merges an existing canonical series with a freshly
// extracted one under a latest-write-wins-per-date rule.
package reconcile

import (
	"sort"

	"eua-price-lab/internal/domain"
)

// Merge returns the right-biased union of the two series keyed by date:
// for every date present in either input, the incoming observation wins
// when present, otherwise the existing one is kept. The result is sorted
// ascending with one observation per date, which makes repeated merges of
// the same data a no-op.
func Merge(existing, incoming domain.Series) domain.Series {
	byDate := make(map[domain.Date]domain.Observation, len(existing)+len(incoming))
	for _, o := range existing {
		byDate[o.Date] = o
	}
	for _, o := range incoming {
		byDate[o.Date] = o
	}

	merged := make(domain.Series, 0, len(byDate))
	for _, o := range byDate {
		merged = append(merged, o)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}

// NewDates counts the dates in incoming that are absent from existing or
// carry a different price there. This is the run summary's new/updated
// figure.
func NewDates(existing, incoming domain.Series) int {
	n := 0
	for _, o := range incoming {
		prev, ok := existing.At(o.Date)
		if !ok || prev.Price != o.Price {
			n++
		}
	}
	return n
}
