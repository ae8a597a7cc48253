// Package storage defines the persistence interfaces of the pipeline and
// the errors its backends share. The CSV store is the canonical durable
// contract; the database backends are optional audit/archive surfaces.
package storage

import (
	"context"

	"eua-price-lab/internal/domain"
)

// SeriesStore is the canonical record store read at the start of a run
// and atomically rewritten at the end.
type SeriesStore interface {
	// Load returns the persisted series in canonical form. Malformed
	// rows are repaired where possible and skipped otherwise; a missing
	// store yields an empty series, not an error.
	Load(ctx context.Context) (domain.Series, error)

	// Save persists a canonical series, replacing the previous contents
	// atomically. Returns the number of rows written. Only I/O failures
	// surface as errors; no half-written store is left behind.
	Save(ctx context.Context, series domain.Series) (int, error)
}

// RepairStats reports what the last Load pass recovered or dropped.
// Implemented by stores whose load is also a repair pass.
type RepairStats interface {
	// LastRepairStats returns counts from the most recent Load:
	// rows recovered from known corruption modes and rows discarded
	// as unrecoverable.
	LastRepairStats() (repaired, discarded int)
}

// ObservationArchive is an append-only archive of merged series, keyed by
// (run_id, date). Duplicate dates across runs are expected; within a run
// they are not.
type ObservationArchive interface {
	// ArchiveRun appends the observations of one run.
	ArchiveRun(ctx context.Context, runID string, series domain.Series) error

	// GetByDateRange retrieves archived observations within [from, to]
	// (inclusive), latest run winning per date, ordered by date ASC.
	GetByDateRange(ctx context.Context, from, to domain.Date) (domain.Series, error)
}

// RunStore records the audit summary of reconciliation runs.
type RunStore interface {
	// RecordRun persists a run summary.
	RecordRun(ctx context.Context, rec *domain.RunRecord) error

	// GetRecent retrieves the most recent run summaries, newest first.
	GetRecent(ctx context.Context, limit int) ([]*domain.RunRecord, error)
}
