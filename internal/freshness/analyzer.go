package freshness

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/veracitylabs/claimcheck/internal/model"
)

// timeNow is injectable for tests
var timeNow = time.Now

// dataDateLayouts are tried in order against the verifier's extracted
// data date before falling back to claim-text heuristics.
var dataDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2006",
	"Jan 2006",
	"2006-01",
}

var (
	rollingWindowRe = regexp.MustCompile(`trailing\s+\d+\s+months?|(?:last|past)\s+\d+\s+(?:months?|years?|quarters?)|\bttm\b|\bltm\b|year[- ]to[- ]date|\bytd\b`)
	quarterRe       = regexp.MustCompile(`\bq([1-4])(?:\s+(\d{4}))?\b`)
	yearRe          = regexp.MustCompile(`\b(20\d{2})\b`)
	monthRe         = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\.?(?:\s+(\d{1,2})(?:st|nd|rd|th)?,?)?(?:\s+(\d{4}))?\b`)
	presentTenseRe  = regexp.MustCompile(`\b(?:is|are|has|have)\b`)
)

var currencyCues = []string{"current", "now", "today", "recent", "latest", "as of"}

// Analyze judges how current the claim's underlying data is. The
// extracted data date wins when it parses; otherwise the claim text is
// scanned through a cascade of date heuristics. Absence of any date
// reference defaults to fresh: a claim that names no date is assumed
// to describe the current state.
func Analyze(claimText, dataDate string) (model.Freshness, string) {
	now := timeNow()

	// 1. Explicit data date from the verifier
	if dataDate != "" {
		for _, layout := range dataDateLayouts {
			if t, err := time.Parse(layout, dataDate); err == nil {
				age := monthsBetween(now, t)
				return band(age, fmt.Sprintf("data date %s is %s old", dataDate, months(age)))
			}
		}
		// Unparsable data date falls through to text heuristics
	}

	text := strings.ToLower(claimText)

	// 2. Rolling time windows are always current by construction
	if rollingWindowRe.MatchString(text) {
		return model.FreshnessFresh, "uses rolling time period"
	}

	// 3. Explicit quarter reference
	if m := quarterRe.FindStringSubmatch(text); m != nil {
		quarter, _ := strconv.Atoi(m[1])
		year := now.Year()
		if m[2] != "" {
			year, _ = strconv.Atoi(m[2])
		}

		end := time.Date(year, time.Month(quarter*3), 1, 0, 0, 0, 0, time.UTC)
		age := monthsBetween(now, end)
		reason := fmt.Sprintf("Q%d %d ended %s ago", quarter, year, months(age))

		// A quarter names a period, not an instant, so the dated band
		// gets one quarter of grace before tipping into stale.
		switch {
		case age <= 3:
			return model.FreshnessFresh, reason
		case age <= 14:
			return model.FreshnessDated, reason
		default:
			return model.FreshnessStale, reason
		}
	}

	// 4. Bare year reference
	if m := yearRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		reason := fmt.Sprintf("references year %d", year)
		switch yearsAgo := now.Year() - year; {
		case yearsAgo <= 0:
			return model.FreshnessFresh, reason
		case yearsAgo == 1:
			return model.FreshnessDated, reason
		default:
			return model.FreshnessStale, reason
		}
	}

	// 5. Month name, optionally with day and year
	if f, reason, ok := matchMonth(text, now); ok {
		return f, reason
	}

	// 6. Present-tense and currency cues
	for _, cue := range currencyCues {
		if strings.Contains(text, cue) {
			return model.FreshnessFresh, "appears to reference current state"
		}
	}
	if presentTenseRe.MatchString(text) {
		return model.FreshnessFresh, "appears to reference current state"
	}

	// 7. Deliberate product default: absence of a date is not evidence
	// of staleness.
	return model.FreshnessFresh, "no date reference found - assumed current unless stated otherwise"
}

func matchMonth(text string, now time.Time) (model.Freshness, string, bool) {
	m := monthRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}

	// "may" doubles as a modal verb; require a day or year next to it
	if m[1] == "may" && m[2] == "" && m[3] == "" {
		return "", "", false
	}

	month := monthIndex(m[1])
	year := now.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}

	age := monthsBetween(now, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	f, reason := band(age, fmt.Sprintf("references %s %d, %s ago", m[1], year, months(age)))
	return f, reason, true
}

// band applies the shared 3/12-month freshness bands
func band(ageMonths int, reason string) (model.Freshness, string) {
	switch {
	case ageMonths <= 3:
		return model.FreshnessFresh, reason
	case ageMonths <= 12:
		return model.FreshnessDated, reason
	default:
		return model.FreshnessStale, reason
	}
}

func monthsBetween(now, then time.Time) int {
	diff := (now.Year()-then.Year())*12 + int(now.Month()) - int(then.Month())
	if diff < 0 {
		return 0
	}
	return diff
}

func months(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

func monthIndex(name string) time.Month {
	switch name {
	case "january":
		return time.January
	case "february":
		return time.February
	case "march":
		return time.March
	case "april":
		return time.April
	case "may":
		return time.May
	case "june":
		return time.June
	case "july":
		return time.July
	case "august":
		return time.August
	case "september":
		return time.September
	case "october":
		return time.October
	case "november":
		return time.November
	default:
		return time.December
	}
}
