package provider

import (
	"strings"
	"time"

	"github.com/quantral/calendar-data/internal/model"
)

// ParseDate parses a provider date field to UTC midnight. Accepts
// date-only and datetime forms. Returns the zero time for bad input;
// records without a usable date are dropped by the reconciler.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOnly(t)
		}
	}
	return time.Time{}
}

// ParseTimestamp parses a provider datetime field, preserving time of day.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ParseSession normalizes provider time-of-day markers to session buckets.
func ParseSession(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bmo", "pre", "pre-market", "before open", "before market open":
		return model.SessionBeforeOpen
	case "amc", "post", "after-hours", "after close", "after market close":
		return model.SessionAfterClose
	case "dmh", "during", "during market hours":
		return model.SessionDuringHours
	default:
		return model.SessionUnknown
	}
}

// FiscalPeriod derives (year, quarter) from a fiscal period end date.
func FiscalPeriod(end time.Time) (int, int) {
	return end.Year(), (int(end.Month())-1)/3 + 1
}
