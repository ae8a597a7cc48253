package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/storage"
)

func TestObservationArchive_LatestRunWinsPerDate(t *testing.T) {
	archive := NewObservationArchive()
	ctx := context.Background()

	jan1 := domain.NewDate(2024, time.January, 1)
	jan2 := domain.NewDate(2024, time.January, 2)

	err := archive.ArchiveRun(ctx, "run-1", domain.Series{
		{Date: jan1, Price: 80},
		{Date: jan2, Price: 81},
	})
	if err != nil {
		t.Fatalf("ArchiveRun failed: %v", err)
	}
	err = archive.ArchiveRun(ctx, "run-2", domain.Series{
		{Date: jan1, Price: 85.5},
	})
	if err != nil {
		t.Fatalf("ArchiveRun failed: %v", err)
	}

	got, err := archive.GetByDateRange(ctx, jan1, jan2)
	if err != nil {
		t.Fatalf("GetByDateRange failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Price != 85.5 {
		t.Errorf("run-2 should win for %s, got price %v", jan1, got[0].Price)
	}
}

func TestObservationArchive_RangeBounds(t *testing.T) {
	archive := NewObservationArchive()
	ctx := context.Background()

	if err := archive.ArchiveRun(ctx, "run-1", domain.Series{
		{Date: domain.NewDate(2024, time.January, 1), Price: 80},
		{Date: domain.NewDate(2024, time.January, 15), Price: 81},
		{Date: domain.NewDate(2024, time.February, 1), Price: 82},
	}); err != nil {
		t.Fatalf("ArchiveRun failed: %v", err)
	}

	got, err := archive.GetByDateRange(ctx,
		domain.NewDate(2024, time.January, 1),
		domain.NewDate(2024, time.January, 31))
	if err != nil {
		t.Fatalf("GetByDateRange failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 rows inside range, got %d", len(got))
	}
}

func TestObservationArchive_EmptyRunID(t *testing.T) {
	archive := NewObservationArchive()
	err := archive.ArchiveRun(context.Background(), "", domain.Series{})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
