package clickhouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/storage"
)

func TestObservationStore_ArchiveAndGetByDateRange(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewObservationStore(conn)
	ctx := context.Background()

	series := domain.Series{
		{Date: domain.NewDate(2024, time.June, 28), Price: 68.50},
		{Date: domain.NewDate(2024, time.July, 1), Price: 69.10},
		{Date: domain.NewDate(2024, time.July, 2), Price: 70.25},
	}
	require.NoError(t, store.ArchiveRun(ctx, "run-001", series))

	got, err := store.GetByDateRange(ctx,
		domain.NewDate(2024, time.June, 28),
		domain.NewDate(2024, time.July, 2),
	)
	require.NoError(t, err)
	require.True(t, series.Equal(got), "expected %v, got %v", series, got)
}

func TestObservationStore_LatestRunWinsPerDate(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewObservationStore(conn)
	ctx := context.Background()

	day := domain.NewDate(2024, time.July, 1)
	require.NoError(t, store.ArchiveRun(ctx, "run-001", domain.Series{{Date: day, Price: 69.10}}))

	// archived_at has millisecond precision; keep the runs apart.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.ArchiveRun(ctx, "run-002", domain.Series{{Date: day, Price: 69.85}}))

	got, err := store.GetByDateRange(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 69.85, got[0].Price)
}

func TestObservationStore_RangeBoundsAreInclusive(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewObservationStore(conn)
	ctx := context.Background()

	series := domain.Series{
		{Date: domain.NewDate(2024, time.July, 1), Price: 69.10},
		{Date: domain.NewDate(2024, time.July, 2), Price: 70.25},
		{Date: domain.NewDate(2024, time.July, 3), Price: 70.90},
		{Date: domain.NewDate(2024, time.July, 4), Price: 71.40},
	}
	require.NoError(t, store.ArchiveRun(ctx, "run-001", series))

	got, err := store.GetByDateRange(ctx,
		domain.NewDate(2024, time.July, 2),
		domain.NewDate(2024, time.July, 3),
	)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, domain.NewDate(2024, time.July, 2), got[0].Date)
	require.Equal(t, domain.NewDate(2024, time.July, 3), got[1].Date)
}

func TestObservationStore_EmptyRunAndEmptyRange(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewObservationStore(conn)
	ctx := context.Background()

	require.NoError(t, store.ArchiveRun(ctx, "run-001", nil))

	got, err := store.GetByDateRange(ctx,
		domain.NewDate(2030, time.January, 1),
		domain.NewDate(2030, time.December, 31),
	)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestObservationStore_EmptyRunID(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewObservationStore(conn)

	err := store.ArchiveRun(context.Background(), "", domain.Series{
		{Date: domain.NewDate(2024, time.July, 1), Price: 69.10},
	})
	require.ErrorIs(t, err, storage.ErrInvalidInput)
}
