// Package pipeline orchestrates one reconciliation run: load the
// canonical store, fetch and extract fresh observations, merge with
// right bias, and write the result back atomically.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/extract"
	"eua-price-lab/internal/observability"
	"eua-price-lab/internal/reconcile"
	"eua-price-lab/internal/storage"
)

// CandidateCollector is the fetch surface the runner depends on.
// *fetch.Collector satisfies it.
type CandidateCollector interface {
	Collect(ctx context.Context) ([]domain.RawCandidate, error)
	Names() string
}

// Options configures a Runner. Store and Collector are required; the
// archive, run store and metrics are optional.
type Options struct {
	Collector CandidateCollector
	Extractor *extract.Extractor
	Store     storage.SeriesStore
	Archive   storage.ObservationArchive
	Runs      storage.RunStore
	Metrics   *observability.Metrics
	Logger    *log.Logger
	Clock     func() time.Time
}

// Runner executes reconciliation runs.
type Runner struct {
	collector CandidateCollector
	extractor *extract.Extractor
	store     storage.SeriesStore
	archive   storage.ObservationArchive
	runs      storage.RunStore
	metrics   *observability.Metrics
	logger    *log.Logger
	clock     func() time.Time
}

// Result summarizes one run.
type Result struct {
	Record domain.RunRecord
	// NoData is set when extraction produced nothing and the store was
	// deliberately left untouched.
	NoData bool
}

// NewRunner creates a Runner.
func NewRunner(opts Options) *Runner {
	if opts.Extractor == nil {
		opts.Extractor = extract.New(extract.DefaultAliases())
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stdout, "[pipeline] ", log.LstdFlags|log.Lshortfile)
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return time.Now().UTC() }
	}
	return &Runner{
		collector: opts.Collector,
		extractor: opts.Extractor,
		store:     opts.Store,
		archive:   opts.Archive,
		runs:      opts.Runs,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		clock:     opts.Clock,
	}
}

// Run executes one reconciliation pass. Store I/O failures are fatal;
// archive and audit failures cost durability of the side records only
// and are logged, not returned.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := r.clock()
	rec := domain.RunRecord{
		RunID:     start.Format("20060102T150405Z"),
		StartedAt: start.UnixMilli(),
		Source:    r.collector.Names(),
	}

	existing, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load canonical store: %w", err)
	}
	if rs, ok := r.store.(storage.RepairStats); ok {
		rec.RowsRepaired, rec.RowsDiscarded = rs.LastRepairStats()
	}
	r.logger.Printf("run %s: loaded %d existing observations (repaired=%d discarded=%d)",
		rec.RunID, len(existing), rec.RowsRepaired, rec.RowsDiscarded)

	candidates, err := r.collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect candidates: %w", err)
	}
	rec.CandidatesSeen = len(candidates)

	var extracted []domain.Observation
	for _, c := range candidates {
		extracted = append(extracted, r.extractor.Extract(c)...)
	}
	rec.Extracted = len(extracted)
	incoming := domain.NewSeries(extracted)

	if len(incoming) == 0 {
		// Nothing usable this run. The store stays exactly as loaded.
		rec.FinishedAt = r.clock().UnixMilli()
		r.logger.Printf("run %s: no observations extracted from %d candidates, store untouched",
			rec.RunID, rec.CandidatesSeen)
		r.finish(ctx, &rec, "no_data")
		return &Result{Record: rec, NoData: true}, nil
	}

	merged := reconcile.Merge(existing, incoming)
	rec.MergedTotal = len(merged)
	rec.NewDates = reconcile.NewDates(existing, incoming)

	written, err := r.store.Save(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("save canonical store: %w", err)
	}
	rec.Written = written
	rec.FinishedAt = r.clock().UnixMilli()

	if r.archive != nil {
		if err := r.archive.ArchiveRun(ctx, rec.RunID, merged); err != nil {
			r.logger.Printf("run %s: archive failed: %v", rec.RunID, err)
		}
	}

	r.logger.Printf("run %s: candidates=%d extracted=%d merged=%d new=%d written=%d",
		rec.RunID, rec.CandidatesSeen, rec.Extracted, rec.MergedTotal, rec.NewDates, rec.Written)
	r.finish(ctx, &rec, "success")

	return &Result{Record: rec}, nil
}

// finish records the run summary and metrics for both outcomes.
func (r *Runner) finish(ctx context.Context, rec *domain.RunRecord, status string) {
	if r.runs != nil {
		if err := r.runs.RecordRun(ctx, rec); err != nil {
			r.logger.Printf("run %s: record run failed: %v", rec.RunID, err)
		}
	}
	if r.metrics == nil {
		return
	}
	r.metrics.CandidatesSeen.Add(float64(rec.CandidatesSeen))
	r.metrics.ObservationsExtracted.Add(float64(rec.Extracted))
	r.metrics.RowsRepaired.Add(float64(rec.RowsRepaired))
	r.metrics.RowsDiscarded.Add(float64(rec.RowsDiscarded))
	r.metrics.NewDates.Add(float64(rec.NewDates))
	r.metrics.RunsTotal.WithLabelValues(status).Inc()
	r.metrics.RunDuration.Observe(float64(rec.FinishedAt-rec.StartedAt) / 1000)
	if status == "success" {
		r.metrics.SeriesSize.Set(float64(rec.MergedTotal))
		r.metrics.LastSuccessfulRun.SetToCurrentTime()
	}
}
