package reconcile

import (
	"strings"
	"time"

	"github.com/quantral/calendar-data/internal/model"
)

// Economic reconciles macro records from all adapters into one canonical
// record per (case-folded name, country, date). Near-duplicate names with
// different punctuation do not unify; no fuzzy matching.
func Economic(batches [][]model.EconomicEvent) []model.EconomicEvent {
	merged := make(map[string]*model.EconomicEvent)
	var order []string
	now := time.Now().UTC()

	for _, batch := range batches {
		for _, rec := range batch {
			if !rec.HasKeyFields() {
				continue
			}

			key := rec.Key()
			cur, ok := merged[key]
			if !ok {
				seeded := seedEconomic(rec)
				merged[key] = &seeded
				order = append(order, key)
				cur = merged[key]
			} else {
				mergeEconomic(cur, rec)
			}

			cur.LastUpdated = now
		}
	}

	out := make([]model.EconomicEvent, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}
	return out
}

// seedEconomic copies the first-seen record, derives the event id, and
// applies schema defaults for absent optional fields.
func seedEconomic(rec model.EconomicEvent) model.EconomicEvent {
	rec.EventID = EventID(rec)
	if rec.Importance == 0 {
		rec.Importance = 1
	}
	if rec.MarketImpact == "" {
		rec.MarketImpact = model.ImpactLow
	}
	if rec.Category == "" {
		rec.Category = "other"
	}
	if rec.Frequency == "" {
		rec.Frequency = "monthly"
	}
	return rec
}

// EventID derives the stable identifier persisted with the record:
// country, slugged name, and the date part of the timestamp.
func EventID(rec model.EconomicEvent) string {
	slug := strings.ToLower(strings.TrimSpace(rec.Name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return rec.Country + "-" + slug + "-" + rec.Timestamp.UTC().Format("2006-01-02")
}

// mergeEconomic copies each incoming field into dst only when dst's value
// is still empty and the incoming one is not.
func mergeEconomic(dst *model.EconomicEvent, src model.EconomicEvent) {
	if dst.Country == "" && src.Country != "" {
		dst.Country = src.Country
	}
	if dst.Period == "" && src.Period != "" {
		dst.Period = src.Period
	}

	dst.Actual = firstFloat(dst.Actual, src.Actual)
	dst.Previous = firstFloat(dst.Previous, src.Previous)
	dst.Forecast = firstFloat(dst.Forecast, src.Forecast)

	if dst.Unit == "" && src.Unit != "" {
		dst.Unit = src.Unit
	}
	if dst.Importance == 0 && src.Importance != 0 {
		dst.Importance = src.Importance
	}
	if dst.Category == "" && src.Category != "" {
		dst.Category = src.Category
	}
	if dst.Frequency == "" && src.Frequency != "" {
		dst.Frequency = src.Frequency
	}
	if dst.MarketImpact == "" && src.MarketImpact != "" {
		dst.MarketImpact = src.MarketImpact
	}
	if dst.Timestamp.IsZero() && !src.Timestamp.IsZero() {
		dst.Timestamp = src.Timestamp
	}

	dst.DataProvider = model.AppendProvider(dst.DataProvider, src.DataProvider)
}
