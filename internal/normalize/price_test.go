package normalize

import (
	"math"
	"testing"
	"time"

	"eua-price-lab/internal/domain"
)

func TestParsePrice_Accepts(t *testing.T) {
	cases := []struct {
		name  string
		token any
		want  float64
	}{
		{"float", 85.5, 85.5},
		{"int", 86, 86.0},
		{"plain string", "85.50", 85.5},
		{"thousands separator", "1,234.56", 1234.56},
		{"euro symbol", "€ 85.50", 85.5},
		{"dollar symbol", "$1,000.25", 1000.25},
		{"upper bound", float64(domain.MaxValidPrice), domain.MaxValidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParsePrice(tc.token)
			if !ok {
				t.Fatalf("ParsePrice(%v) rejected", tc.token)
			}
			if got != tc.want {
				t.Errorf("ParsePrice(%v) = %v, want %v", tc.token, got, tc.want)
			}
		})
	}
}

func TestParsePrice_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		token any
	}{
		{"market id", 8322696.0},
		{"market id string", "8322696"},
		{"zero", 0.0},
		{"negative", -4.2},
		{"empty string", ""},
		{"garbage", "n/a"},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
		{"nil", nil},
		{"just above bound", float64(domain.MaxValidPrice) + 0.01},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, ok := ParsePrice(tc.token); ok {
				t.Errorf("ParsePrice(%v) = %v, want reject", tc.token, got)
			}
		})
	}
}

func TestParseObservation(t *testing.T) {
	obs, ok := ParseObservation("2025-06-30", "85.50")
	if !ok {
		t.Fatal("valid pair rejected")
	}
	want := domain.Observation{Date: domain.NewDate(2025, time.June, 30), Price: 85.5}
	if obs != want {
		t.Errorf("got %+v, want %+v", obs, want)
	}

	// One bad token rejects the whole pair; no partial data.
	if _, ok := ParseObservation("2025-06-30", "8322696"); ok {
		t.Error("pair with market-id price accepted")
	}
	if _, ok := ParseObservation("never", "85.50"); ok {
		t.Error("pair with bad date accepted")
	}
}
