// Package normalize converts raw date and price tokens into canonical
// domain values. Functions are pure and never fail past their boundary:
// anything unparseable is reported as a reject, never as partial data.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"eua-price-lab/internal/domain"
)

// epochMillisThreshold separates second-resolution epochs from
// millisecond-resolution ones. Values above it are milliseconds.
const epochMillisThreshold = 1e10

// dateFormats are tried strictly in order; first match wins. The order is
// load-bearing: MM/DD/YYYY before DD/MM/YYYY means an ambiguous token like
// 03/04/2024 parses as March 4. This mirrors the historical store contents
// and is a documented precision gap, not something to fix silently.
var dateFormats = []string{
	"2006-01-02",
	time.ANSIC, // "Mon Jun 30 00:00:00 2025"
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
}

// isoDatePattern extracts an embedded YYYY-MM-DD substring as a last resort.
var isoDatePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// ParseDate converts a raw date token into a calendar date. The token may
// be a numeric epoch (seconds or milliseconds, disambiguated by magnitude)
// or a string in one of the recognized formats. Epoch conversion uses UTC
// so the resulting calendar day does not depend on the host timezone.
func ParseDate(token any) (domain.Date, bool) {
	if epoch, ok := numericValue(token); ok {
		if epoch <= 0 {
			return domain.Date{}, false
		}
		if epoch > epochMillisThreshold {
			epoch /= 1000
		}
		return domain.DateOf(time.Unix(int64(epoch), 0).UTC()), true
	}

	s, ok := token.(string)
	if !ok {
		return domain.Date{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Date{}, false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOf(t), true
		}
	}

	if m := isoDatePattern.FindString(s); m != "" {
		if t, err := time.Parse("2006-01-02", m); err == nil {
			return domain.DateOf(t), true
		}
	}

	return domain.Date{}, false
}

// numericValue unwraps the numeric types a decoded JSON value or a
// programmatic caller can carry.
func numericValue(token any) (float64, bool) {
	switch v := token.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
