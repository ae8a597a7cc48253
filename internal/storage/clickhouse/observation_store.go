package clickhouse

import (
	"context"
	"fmt"
	"time"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/storage"
)

// ObservationStore implements storage.ObservationArchive using ClickHouse.
// Each run's merged series is appended as-is; reads reconcile duplicate
// dates by archive time, so the table never needs rewriting.
type ObservationStore struct {
	conn *Conn
}

// NewObservationStore creates a new ObservationStore.
func NewObservationStore(conn *Conn) *ObservationStore {
	return &ObservationStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ObservationArchive = (*ObservationStore)(nil)

// ArchiveRun appends the observations of one run.
func (s *ObservationStore) ArchiveRun(ctx context.Context, runID string, series domain.Series) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(series) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO price_observations (run_id, obs_date, price, archived_at)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	archivedAt := time.Now().UTC()
	for _, o := range series {
		if err := batch.Append(runID, o.Date.Time(), o.Price, archivedAt); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByDateRange retrieves archived observations within [from, to]
// (inclusive), latest run winning per date, ordered by date ASC.
func (s *ObservationStore) GetByDateRange(ctx context.Context, from, to domain.Date) (domain.Series, error) {
	query := `
		SELECT obs_date, argMax(price, archived_at) AS price
		FROM price_observations
		WHERE obs_date >= ? AND obs_date <= ?
		GROUP BY obs_date
		ORDER BY obs_date ASC
	`

	rows, err := s.conn.Query(ctx, query, from.Time(), to.Time())
	if err != nil {
		return nil, fmt.Errorf("query by date range: %w", err)
	}
	defer rows.Close()

	var series domain.Series
	for rows.Next() {
		var (
			day   time.Time
			price float64
		)
		if err := rows.Scan(&day, &price); err != nil {
			return nil, fmt.Errorf("scan observation row: %w", err)
		}
		series = append(series, domain.Observation{
			Date:  domain.DateOf(day),
			Price: price,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observation rows: %w", err)
	}
	return series, nil
}
