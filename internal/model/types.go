package model

import (
	"fmt"
	"strings"
	"time"
)

// Session buckets for corporate events (time of day relative to market hours).
const (
	SessionBeforeOpen  = "bmo" // before market open
	SessionAfterClose  = "amc" // after market close
	SessionDuringHours = "dmh"
	SessionUnknown     = "unknown"
)

// Market impact levels for macro events.
const (
	ImpactLow    = "low"
	ImpactMedium = "medium"
	ImpactHigh   = "high"
)

// StatusScheduled is the default status for a newly reconciled event.
const StatusScheduled = "scheduled"

// EarningsEvent is the canonical record for one scheduled corporate
// earnings release, independent of which provider(s) supplied it.
type EarningsEvent struct {
	Symbol   string
	Exchange string
	Date     time.Time // date-only, UTC midnight
	Session  string    // bmo, amc, dmh, unknown

	EPSActual        *float64
	EPSEstimated     *float64
	RevenueActual    *float64
	RevenueEstimated *float64

	// Derived once both operands are present.
	EPSSurprise        *float64
	EPSSurprisePercent *float64

	FiscalYear    int
	FiscalQuarter *int

	Status              string
	TranscriptAvailable bool

	DataProvider string
	LastUpdated  time.Time
}

// Key returns the provider-independent identity key. Records with equal
// keys describe the same real-world event and must merge.
func (e *EarningsEvent) Key() string {
	q := 0
	if e.FiscalQuarter != nil {
		q = *e.FiscalQuarter
	}
	return fmt.Sprintf("%s|%d|%d", e.Symbol, e.FiscalYear, q)
}

// HasKeyFields reports whether the record carries everything the
// reconciliation key needs. Records without them are dropped, not merged.
func (e *EarningsEvent) HasKeyFields() bool {
	return e.Symbol != "" && !e.Date.IsZero() && e.FiscalYear != 0
}

// EconomicEvent is the canonical record for one scheduled macroeconomic
// release.
type EconomicEvent struct {
	EventID string // country|lowercased name|date, set by the reconciler
	Country string
	Name    string
	Period  string // e.g. "Jul", "Q2"

	Actual   *float64
	Previous *float64
	Forecast *float64

	Unit         string
	Importance   int // 1-3
	Category     string
	Frequency    string
	MarketImpact string

	Timestamp time.Time

	DataProvider string
	LastUpdated  time.Time
}

// Key returns the identity key: case-folded name + country + date part of
// the event timestamp. Differently punctuated names from different
// providers do not unify; this is deliberate.
func (e *EconomicEvent) Key() string {
	return fmt.Sprintf("%s|%s|%s",
		strings.ToLower(e.Name), e.Country, e.Timestamp.UTC().Format("2006-01-02"))
}

// HasKeyFields reports whether the record can form its reconciliation key.
func (e *EconomicEvent) HasKeyFields() bool {
	return e.Name != "" && !e.Timestamp.IsZero()
}

// Transcript is an earnings call transcript for one (symbol, quarter).
type Transcript struct {
	Symbol        string
	FiscalQuarter int
	FiscalYear    int
	Date          time.Time
	Content       string
	DataProvider  string
	LastUpdated   time.Time
}

// QuarterRef names a fiscal quarter for targeted transcript fetches.
type QuarterRef struct {
	Quarter int `json:"quarter"`
	Year    int `json:"year"`
}

func (q QuarterRef) String() string {
	return fmt.Sprintf("Q%d %d", q.Quarter, q.Year)
}

// AppendProvider adds a provider id to a comma-joined provider union,
// preserving insertion order and skipping duplicates.
func AppendProvider(existing, provider string) string {
	if provider == "" {
		return existing
	}
	if existing == "" {
		return provider
	}
	for _, p := range strings.Split(existing, ",") {
		if p == provider {
			return existing
		}
	}
	return existing + "," + provider
}

// DateOnly truncates t to UTC midnight.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
