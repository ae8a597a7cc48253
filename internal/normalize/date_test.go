package normalize

import (
	"testing"
	"time"

	"eua-price-lab/internal/domain"
)

func TestParseDate_Formats(t *testing.T) {
	want := domain.NewDate(2025, time.June, 30)

	cases := []struct {
		name  string
		token any
	}{
		{"iso", "2025-06-30"},
		{"verbose", "Mon Jun 30 00:00:00 2025"},
		{"iso with time", "2025-06-30 14:30:00"},
		{"us slash", "06/30/2025"},
		{"embedded iso", "updated 2025-06-30T00:00:00Z"},
		{"surrounding space", "  2025-06-30  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDate(tc.token)
			if !ok {
				t.Fatalf("ParseDate(%v) rejected", tc.token)
			}
			if got != want {
				t.Errorf("ParseDate(%v) = %s, want %s", tc.token, got, want)
			}
		})
	}
}

func TestParseDate_EpochDisambiguation(t *testing.T) {
	// Seconds and milliseconds for the same instant must land on the
	// same calendar day.
	want := domain.NewDate(2024, time.July, 1)

	seconds, ok := ParseDate(float64(1719792000))
	if !ok {
		t.Fatal("seconds epoch rejected")
	}
	if seconds != want {
		t.Errorf("seconds epoch = %s, want %s", seconds, want)
	}

	millis, ok := ParseDate(float64(1719792000000))
	if !ok {
		t.Fatal("milliseconds epoch rejected")
	}
	if millis != want {
		t.Errorf("milliseconds epoch = %s, want %s", millis, want)
	}
}

func TestParseDate_SlashOrderPriority(t *testing.T) {
	// 03/04/2024 is ambiguous; MM/DD/YYYY is tried first so it must
	// resolve to March 4. A known precision gap, locked in by test.
	got, ok := ParseDate("03/04/2024")
	if !ok {
		t.Fatal("ambiguous slash date rejected")
	}
	if want := domain.NewDate(2024, time.March, 4); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	// Day > 12 rules out month/day, so the DD/MM fallback applies.
	got, ok = ParseDate("13/04/2024")
	if !ok {
		t.Fatal("day-first slash date rejected")
	}
	if want := domain.NewDate(2024, time.April, 13); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParseDate_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		token any
	}{
		{"empty", ""},
		{"garbage", "not a date"},
		{"zero epoch", float64(0)},
		{"negative epoch", float64(-86400)},
		{"nil", nil},
		{"bool", true},
		{"invalid embedded", "9999-99-99"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, ok := ParseDate(tc.token); ok {
				t.Errorf("ParseDate(%v) = %s, want reject", tc.token, got)
			}
		})
	}
}

func TestParseDate_IntTokens(t *testing.T) {
	want := domain.NewDate(2024, time.July, 1)
	for _, token := range []any{int(1719792000), int64(1719792000000)} {
		got, ok := ParseDate(token)
		if !ok {
			t.Fatalf("ParseDate(%v) rejected", token)
		}
		if got != want {
			t.Errorf("ParseDate(%v) = %s, want %s", token, got, want)
		}
	}
}
