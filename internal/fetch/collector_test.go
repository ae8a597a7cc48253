package fetch

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/observability"
)

// stubSource records the spans it was asked for.
type stubSource struct {
	name    string
	spans   []int
	payload []domain.RawCandidate
	err     error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, spanYears int) ([]domain.RawCandidate, error) {
	s.spans = append(s.spans, spanYears)
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func TestCollectorQueriesAllSpans(t *testing.T) {
	src := &stubSource{name: "stub", payload: []domain.RawCandidate{map[string]any{"date": "2024-07-01", "price": 69.1}}}
	c := NewCollector([]Source{src}, nil, discard())

	candidates, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, DefaultSpans, src.spans)
	require.Len(t, candidates, len(DefaultSpans))
}

func TestCollectorAbsorbsSourceFailure(t *testing.T) {
	dead := &stubSource{name: "dead", err: errors.New("connection refused")}
	live := &stubSource{name: "live", payload: []domain.RawCandidate{map[string]any{"x": 1}}}
	c := NewCollector([]Source{dead, live}, []int{1, 2}, discard())

	candidates, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2, "live source still contributes")
}

func TestCollectorCountsSourceFailures(t *testing.T) {
	dead := &stubSource{name: "dead-counted", err: errors.New("connection refused")}
	c := NewCollector([]Source{dead}, []int{1, 2, 3}, discard())

	failures := observability.DefaultMetrics.SourceFailures.WithLabelValues(dead.name)
	before := testutil.ToFloat64(failures)

	_, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, before+3, testutil.ToFloat64(failures), "every failed span fetch must be counted")
}

func TestCollectorStopsOnCancel(t *testing.T) {
	src := &stubSource{name: "stub"}
	c := NewCollector([]Source{src}, []int{1, 2, 3}, discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Collect(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, src.spans)
}

func TestCollectorNames(t *testing.T) {
	c := NewCollector([]Source{
		&stubSource{name: "browser"},
		&stubSource{name: "api"},
	}, []int{1}, discard())
	require.Equal(t, "browser,api", c.Names())
}
