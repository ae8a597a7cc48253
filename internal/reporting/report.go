package reporting

import (
	"time"

	"eua-price-lab/internal/domain"
)

// Report represents the series statistics report structure.
type Report struct {
	// Metadata
	GeneratedAt time.Time

	// Series summary
	Stats Stats

	// Monthly averages (sorted by year, month)
	Monthly []MonthlyRow
}

// Stats contains the whole-series summary.
type Stats struct {
	Records   int
	FirstDate domain.Date
	LastDate  domain.Date
	MinPrice  float64
	MinDate   domain.Date
	MaxPrice  float64
	MaxDate   domain.Date
	AvgPrice  float64
	LastPrice float64
}

// MonthlyRow represents one row in the monthly averages table.
type MonthlyRow struct {
	Year    int
	Month   time.Month
	Average float64
	Min     float64
	Max     float64
	Count   int
}
