// Package csvstore implements the canonical CSV record store. Every load
// pass is also a repair pass: rows in known-bad shapes left behind by
// earlier faulty writes are reinterpreted where possible and dropped
// otherwise, so corruption never propagates past a load.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/normalize"
	"eua-price-lab/internal/storage"
)

// Store reads and writes the canonical date,price CSV file.
type Store struct {
	path   string
	logger *log.Logger

	// Stats from the most recent Load.
	lastRepaired  int
	lastDiscarded int
}

// New creates a Store for the given file path.
func New(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{path: path, logger: logger}
}

// Compile-time interface checks.
var (
	_ storage.SeriesStore = (*Store)(nil)
	_ storage.RepairStats = (*Store)(nil)
)

// Path returns the store's file path.
func (s *Store) Path() string { return s.path }

// LastRepairStats returns counts from the most recent Load.
func (s *Store) LastRepairStats() (repaired, discarded int) {
	return s.lastRepaired, s.lastDiscarded
}

// Load reads the persisted store and returns a canonical series. A
// missing file yields an empty series. Malformed rows are repaired or
// skipped, never propagated; only an unreadable path is an error.
func (s *Store) Load(_ context.Context) (domain.Series, error) {
	s.lastRepaired, s.lastDiscarded = 0, 0

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Series{}, nil
		}
		return nil, fmt.Errorf("open store %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var obs []domain.Observation
	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A row the CSV layer itself cannot make sense of.
			s.lastDiscarded++
			continue
		}
		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}
		obs = append(obs, s.parseRow(record)...)
	}

	return domain.NewSeries(obs), nil
}

// parseRow converts one persisted row into zero or more observations.
func (s *Store) parseRow(record []string) []domain.Observation {
	if len(record) == 0 {
		return nil
	}

	dateField := trimQuotes(record[0])
	priceField := ""
	if len(record) > 1 {
		priceField = trimQuotes(record[1])
	}
	if dateField == "" && priceField == "" {
		return nil
	}

	// Known corruption mode: a whole serialized list embedded in the
	// date column by a historical save bug. Explode it back into
	// individual observations.
	if strings.HasPrefix(dateField, "[") {
		return s.repairListRow(dateField)
	}

	// A price outside the plausible band marks the whole row as
	// corrupted sentinel data.
	if _, ok := normalize.ParsePrice(priceField); !ok {
		s.lastDiscarded++
		return nil
	}

	o, ok := normalize.ParseObservation(dateField, priceField)
	if !ok {
		s.lastDiscarded++
		return nil
	}
	return []domain.Observation{o}
}

// repairListRow reinterprets a nested-list literal of [timestamp, price]
// pairs. Outer parse failure discards the row silently; each inner pair
// is normalized independently.
func (s *Store) repairListRow(field string) []domain.Observation {
	values, err := parseListLiteral(field)
	if err != nil {
		s.logger.Printf("discarding unparseable list row: %v", err)
		s.lastDiscarded++
		return nil
	}

	var out []domain.Observation
	for _, item := range values {
		pair, ok := item.([]any)
		if !ok || len(pair) < 2 {
			continue
		}
		o, ok := normalize.ParseObservation(pair[0], pair[1])
		if !ok {
			continue
		}
		out = append(out, o)
	}
	if len(out) > 0 {
		s.lastRepaired += len(out)
		s.logger.Printf("repaired list row into %d observations", len(out))
	} else {
		s.lastDiscarded++
	}
	return out
}

// Save atomically replaces the store with the canonical serialization of
// the series: date,price header, ascending ISO dates, two-decimal prices.
// Returns the number of rows written.
func (s *Store) Save(_ context.Context, series domain.Series) (int, error) {
	// Invalid observations must never reach the disk, whatever the
	// caller passed in.
	canonical := domain.NewSeries(series)

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create store directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.csv")
	if err != nil {
		return 0, fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"date", "price"}); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write store header: %w", err)
	}
	for _, o := range canonical {
		if err := w.Write([]string{o.Date.String(), fmt.Sprintf("%.2f", o.Price)}); err != nil {
			tmp.Close()
			return 0, fmt.Errorf("write store row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("flush store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("sync store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return 0, fmt.Errorf("replace store %s: %w", s.path, err)
	}

	return len(canonical), nil
}

// isHeader reports whether a record is the date,price header row.
func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "date")
}

// trimQuotes strips whitespace and surrounding quote characters left
// behind by earlier writers.
func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
