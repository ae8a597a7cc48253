package fetch

import (
	"context"
	"log"
	"strings"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/observability"
)

// Collector queries every source across every lookback span and pools the
// candidates. Source failures are absorbed: a dead source costs coverage,
// not the run.
type Collector struct {
	sources []Source
	spans   []int
	logger  *log.Logger
}

// NewCollector creates a Collector. Nil spans fall back to DefaultSpans.
func NewCollector(sources []Source, spans []int, logger *log.Logger) *Collector {
	if len(spans) == 0 {
		spans = DefaultSpans
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Collector{sources: sources, spans: spans, logger: logger}
}

// Names returns the source names, comma separated, for run records.
func (c *Collector) Names() string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, s.Name())
	}
	return strings.Join(names, ",")
}

// Collect fetches from all sources over all spans. Only context
// cancellation aborts it.
func (c *Collector) Collect(ctx context.Context) ([]domain.RawCandidate, error) {
	var candidates []domain.RawCandidate
	for _, src := range c.sources {
		for _, span := range c.spans {
			if err := ctx.Err(); err != nil {
				return candidates, err
			}
			got, err := src.Fetch(ctx, span)
			if err != nil {
				c.logger.Printf("source %s span %dy failed: %v", src.Name(), span, err)
				observability.RecordSourceFailure(src.Name())
				continue
			}
			candidates = append(candidates, got...)
		}
	}
	return candidates, nil
}
