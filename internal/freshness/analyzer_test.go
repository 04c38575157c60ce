package freshness

import (
	"strings"
	"testing"
	"time"

	"github.com/veracitylabs/claimcheck/internal/model"
)

// fixNow pins the clock for the duration of a test
func fixNow(t *testing.T, fixed time.Time) {
	t.Helper()
	original := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = original })
}

func TestAnalyze_DataDateWins(t *testing.T) {
	fixNow(t, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		dataDate string
		want     model.Freshness
	}{
		{"three months old", "2024-11-01", model.FreshnessFresh},
		{"half a year old", "2024-08-10", model.FreshnessDated},
		{"two years old", "2023-01-15", model.FreshnessStale},
		{"month-year layout", "November 2024", model.FreshnessFresh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := Analyze("some dated claim from 2019", tt.dataDate)
			if got != tt.want {
				t.Errorf("Analyze() = %s (%s), want %s", got, reason, tt.want)
			}
			if !strings.Contains(reason, "data date") {
				t.Errorf("expected data-date reason, got %q", reason)
			}
		})
	}
}

func TestAnalyze_UnparsableDataDateFallsToText(t *testing.T) {
	fixNow(t, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))

	got, _ := Analyze("Revenue over the trailing 12 months grew", "sometime last week")
	if got != model.FreshnessFresh {
		t.Errorf("expected text heuristics after bad data date, got %s", got)
	}
}

func TestAnalyze_RollingWindows(t *testing.T) {
	fixNow(t, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))

	claims := []string{
		"Revenue over the trailing 12 months reached $4B",
		"Sales over the last 6 months were flat",
		"TTM earnings hit a record",
		"Year-to-date returns are positive",
	}

	for _, claim := range claims {
		got, reason := Analyze(claim, "")
		if got != model.FreshnessFresh {
			t.Errorf("Analyze(%q) = %s (%s), want fresh", claim, got, reason)
		}
	}
}

func TestAnalyze_Quarters(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		claim string
		want  model.Freshness
	}{
		{
			name:  "current quarter is fresh",
			now:   time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC),
			claim: "Q4 2024 revenue beat estimates",
			want:  model.FreshnessFresh,
		},
		{
			name:  "fourteen months after quarter end is still dated",
			now:   time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC),
			claim: "Q4 2023 revenue beat estimates",
			want:  model.FreshnessDated,
		},
		{
			name:  "fifteen months after quarter end is stale",
			now:   time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			claim: "Q4 2023 revenue beat estimates",
			want:  model.FreshnessStale,
		},
		{
			name:  "quarter without year assumes current year",
			now:   time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC),
			claim: "Q1 results were strong",
			want:  model.FreshnessDated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixNow(t, tt.now)
			got, reason := Analyze(tt.claim, "")
			if got != tt.want {
				t.Errorf("Analyze(%q) = %s (%s), want %s", tt.claim, got, reason, tt.want)
			}
		})
	}
}

func TestAnalyze_BareYear(t *testing.T) {
	fixNow(t, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		claim string
		want  model.Freshness
	}{
		{"Revenue in 2025 is growing", model.FreshnessFresh},
		{"Revenue in 2024 was strong", model.FreshnessDated},
		{"Revenue in 2022 was strong", model.FreshnessStale},
	}

	for _, tt := range tests {
		got, reason := Analyze(tt.claim, "")
		if got != tt.want {
			t.Errorf("Analyze(%q) = %s (%s), want %s", tt.claim, got, reason, tt.want)
		}
	}
}

func TestAnalyze_MonthNames(t *testing.T) {
	fixNow(t, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		claim string
		want  model.Freshness
	}{
		{"recent month", "The deal closed in January 2025", model.FreshnessFresh},
		{"last spring", "The deal closed in March 2024", model.FreshnessDated},
		{"years back", "The deal closed in June 2022", model.FreshnessStale},
		{"may with a year counts", "The deal closed in May 2024", model.FreshnessDated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := Analyze(tt.claim, "")
			if got != tt.want {
				t.Errorf("Analyze(%q) = %s (%s), want %s", tt.claim, got, reason, tt.want)
			}
		})
	}
}

func TestAnalyze_BareMayIsNotAMonth(t *testing.T) {
	fixNow(t, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))

	got, reason := Analyze("The product may launch soon", "")
	if got != model.FreshnessFresh {
		t.Errorf("Analyze() = %s (%s), want fresh", got, reason)
	}
	if !strings.Contains(reason, "no date reference") {
		t.Errorf("bare 'may' must not be read as a month, got reason %q", reason)
	}
}

func TestAnalyze_CurrencyAndPresentTenseCues(t *testing.T) {
	fixNow(t, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))

	claims := []string{
		"Apple's stock price today exceeds $200",
		"Tesla is the largest EV maker",
	}

	for _, claim := range claims {
		got, reason := Analyze(claim, "")
		if got != model.FreshnessFresh {
			t.Errorf("Analyze(%q) = %s, want fresh", claim, got)
		}
		if !strings.Contains(reason, "current state") {
			t.Errorf("expected current-state reason for %q, got %q", claim, reason)
		}
	}
}

func TestAnalyze_DefaultsToFresh(t *testing.T) {
	fixNow(t, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))

	got, reason := Analyze("Revenue grew twenty percent", "")
	if got != model.FreshnessFresh {
		t.Errorf("Analyze() = %s (%s), want fresh", got, reason)
	}
	if !strings.Contains(reason, "no date reference") {
		t.Errorf("expected default reason, got %q", reason)
	}
}

func TestMonthsBetween(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		then time.Time
		want int
	}{
		{time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), 14},
		{time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), 0},
		// Future dates clamp to zero
		{time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		if got := monthsBetween(now, tt.then); got != tt.want {
			t.Errorf("monthsBetween(%v) = %d, want %d", tt.then, got, tt.want)
		}
	}
}
