// Package reporting produces summary reports over the canonical series.
package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/storage"
)

// Generator produces reports from the stored series.
type Generator struct {
	store storage.SeriesStore
	now   func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(store storage.SeriesStore) *Generator {
	return &Generator{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate loads the series and computes the full report. An empty
// series is an error: there is nothing to report on.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	series, err := g.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("series is empty")
	}

	return &Report{
		GeneratedAt: g.now(),
		Stats:       computeStats(series),
		Monthly:     computeMonthly(series),
	}, nil
}

// computeStats summarizes a non-empty canonical series.
func computeStats(series domain.Series) Stats {
	s := Stats{
		Records:   len(series),
		FirstDate: series[0].Date,
		LastDate:  series[len(series)-1].Date,
		MinPrice:  series[0].Price,
		MinDate:   series[0].Date,
		MaxPrice:  series[0].Price,
		MaxDate:   series[0].Date,
		LastPrice: series[len(series)-1].Price,
	}

	var sum float64
	for _, o := range series {
		sum += o.Price
		if o.Price < s.MinPrice {
			s.MinPrice = o.Price
			s.MinDate = o.Date
		}
		if o.Price > s.MaxPrice {
			s.MaxPrice = o.Price
			s.MaxDate = o.Date
		}
	}
	s.AvgPrice = sum / float64(len(series))
	return s
}

type monthKey struct {
	year  int
	month time.Month
}

// computeMonthly aggregates per calendar month.
func computeMonthly(series domain.Series) []MonthlyRow {
	byMonth := make(map[monthKey]*MonthlyRow)
	sums := make(map[monthKey]float64)

	for _, o := range series {
		k := monthKey{o.Date.Year, o.Date.Month}
		row, ok := byMonth[k]
		if !ok {
			row = &MonthlyRow{Year: k.year, Month: k.month, Min: o.Price, Max: o.Price}
			byMonth[k] = row
		}
		if o.Price < row.Min {
			row.Min = o.Price
		}
		if o.Price > row.Max {
			row.Max = o.Price
		}
		row.Count++
		sums[k] += o.Price
	}

	rows := make([]MonthlyRow, 0, len(byMonth))
	for k, row := range byMonth {
		row.Average = sums[k] / float64(row.Count)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}
