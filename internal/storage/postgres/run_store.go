package postgres

import (
	"context"
	"fmt"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/storage"
)

// RunStore implements storage.RunStore using PostgreSQL.
type RunStore struct {
	pool *Pool
}

// NewRunStore creates a new RunStore.
func NewRunStore(pool *Pool) *RunStore {
	return &RunStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RunStore = (*RunStore)(nil)

// RecordRun persists a run summary. A re-recorded run_id overwrites the
// previous summary: runs are retried, and the last word is the truth.
func (s *RunStore) RecordRun(ctx context.Context, rec *domain.RunRecord) error {
	if rec == nil || rec.RunID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO scrape_runs (
			run_id, started_at, finished_at, source,
			candidates_seen, extracted, rows_repaired, rows_discarded,
			merged_total, new_dates, written
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (run_id) DO UPDATE SET
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at,
			source = EXCLUDED.source,
			candidates_seen = EXCLUDED.candidates_seen,
			extracted = EXCLUDED.extracted,
			rows_repaired = EXCLUDED.rows_repaired,
			rows_discarded = EXCLUDED.rows_discarded,
			merged_total = EXCLUDED.merged_total,
			new_dates = EXCLUDED.new_dates,
			written = EXCLUDED.written
	`

	_, err := s.pool.Exec(ctx, query,
		rec.RunID,
		rec.StartedAt,
		rec.FinishedAt,
		rec.Source,
		rec.CandidatesSeen,
		rec.Extracted,
		rec.RowsRepaired,
		rec.RowsDiscarded,
		rec.MergedTotal,
		rec.NewDates,
		rec.Written,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// GetRecent retrieves the most recent run summaries, newest first.
func (s *RunStore) GetRecent(ctx context.Context, limit int) ([]*domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT run_id, started_at, finished_at, source,
		       candidates_seen, extracted, rows_repaired, rows_discarded,
		       merged_total, new_dates, written
		FROM scrape_runs
		ORDER BY started_at DESC, run_id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent runs: %w", err)
	}
	defer rows.Close()

	var out []*domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.StartedAt,
			&rec.FinishedAt,
			&rec.Source,
			&rec.CandidatesSeen,
			&rec.Extracted,
			&rec.RowsRepaired,
			&rec.RowsDiscarded,
			&rec.MergedTotal,
			&rec.NewDates,
			&rec.Written,
		); err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run records: %w", err)
	}
	return out, nil
}

// GetByID retrieves one run summary. Returns storage.ErrNotFound if the
// run_id is unknown.
func (s *RunStore) GetByID(ctx context.Context, runID string) (*domain.RunRecord, error) {
	query := `
		SELECT run_id, started_at, finished_at, source,
		       candidates_seen, extracted, rows_repaired, rows_discarded,
		       merged_total, new_dates, written
		FROM scrape_runs
		WHERE run_id = $1
	`

	var rec domain.RunRecord
	err := s.pool.QueryRow(ctx, query, runID).Scan(
		&rec.RunID,
		&rec.StartedAt,
		&rec.FinishedAt,
		&rec.Source,
		&rec.CandidatesSeen,
		&rec.Extracted,
		&rec.RowsRepaired,
		&rec.RowsDiscarded,
		&rec.MergedTotal,
		&rec.NewDates,
		&rec.Written,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get run by id: %w", err)
	}
	return &rec, nil
}
