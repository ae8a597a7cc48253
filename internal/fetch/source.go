// Package fetch acquires raw candidate payloads from remote sources.
// Sources never interpret what they fetch; everything decoded lands in
// the extractor untyped.
package fetch

import (
	"context"

	"eua-price-lab/internal/domain"
)

// DefaultSpans is the lookback span order, in years. The odd ordering is
// deliberate: the mid-size span first tends to return the densest payload,
// the rest widen the net.
var DefaultSpans = []int{3, 1, 2, 5, 10}

// Source produces raw candidates for one lookback span.
type Source interface {
	// Name identifies the source in logs and run records.
	Name() string

	// Fetch retrieves candidate payloads covering the last spanYears
	// years. Sources without a span notion ignore the argument.
	Fetch(ctx context.Context, spanYears int) ([]domain.RawCandidate, error)
}
