package reconcile

import (
	"time"

	"github.com/quantral/calendar-data/internal/model"
)

// Earnings reconciles earnings records from all adapters into one
// canonical record per (symbol, fiscal year, fiscal quarter). Input is
// one batch per adapter; failed adapters contribute an empty or nil
// batch. Output order is unspecified.
func Earnings(batches [][]model.EarningsEvent) []model.EarningsEvent {
	merged := make(map[string]*model.EarningsEvent)
	var order []string
	now := time.Now().UTC()

	for _, batch := range batches {
		for _, rec := range batch {
			if !rec.HasKeyFields() {
				// Missing identity fields: dropped, not an error.
				continue
			}

			key := rec.Key()
			cur, ok := merged[key]
			if !ok {
				seeded := seedEarnings(rec)
				merged[key] = &seeded
				order = append(order, key)
				cur = merged[key]
			} else {
				mergeEarnings(cur, rec)
			}

			computeSurprise(cur)
			cur.LastUpdated = now
		}
	}

	out := make([]model.EarningsEvent, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}
	return out
}

// seedEarnings copies the first-seen record and applies schema defaults
// for absent optional fields.
func seedEarnings(rec model.EarningsEvent) model.EarningsEvent {
	if rec.Session == "" {
		rec.Session = model.SessionUnknown
	}
	if rec.Status == "" {
		rec.Status = model.StatusScheduled
	}
	return rec
}

// mergeEarnings copies each incoming field into dst only when dst's value
// is still empty and the incoming one is not. Identity fields and the
// provider list follow their own rules.
func mergeEarnings(dst *model.EarningsEvent, src model.EarningsEvent) {
	if dst.Exchange == "" && src.Exchange != "" {
		dst.Exchange = src.Exchange
	}
	if dst.Date.IsZero() && !src.Date.IsZero() {
		dst.Date = src.Date
	}
	if dst.Session == model.SessionUnknown && src.Session != "" && src.Session != model.SessionUnknown {
		dst.Session = src.Session
	}

	dst.EPSActual = firstFloat(dst.EPSActual, src.EPSActual)
	dst.EPSEstimated = firstFloat(dst.EPSEstimated, src.EPSEstimated)
	dst.RevenueActual = firstFloat(dst.RevenueActual, src.RevenueActual)
	dst.RevenueEstimated = firstFloat(dst.RevenueEstimated, src.RevenueEstimated)
	dst.EPSSurprise = firstFloat(dst.EPSSurprise, src.EPSSurprise)
	dst.EPSSurprisePercent = firstFloat(dst.EPSSurprisePercent, src.EPSSurprisePercent)

	if dst.Status == "" && src.Status != "" {
		dst.Status = src.Status
	}
	if src.TranscriptAvailable {
		dst.TranscriptAvailable = true
	}

	dst.DataProvider = model.AppendProvider(dst.DataProvider, src.DataProvider)
}

// computeSurprise derives the surprise fields exactly once, when both
// operands are present and the fields are not already populated.
func computeSurprise(e *model.EarningsEvent) {
	if e.EPSActual == nil || e.EPSEstimated == nil {
		return
	}
	if e.EPSSurprise == nil {
		s := *e.EPSActual - *e.EPSEstimated
		e.EPSSurprise = &s
	}
	if e.EPSSurprisePercent == nil && *e.EPSEstimated != 0 {
		pct := 100 * *e.EPSSurprise / *e.EPSEstimated
		e.EPSSurprisePercent = &pct
	}
}

// firstFloat keeps cur unless it is nil and incoming is not.
func firstFloat(cur, incoming *float64) *float64 {
	if cur == nil && incoming != nil {
		v := *incoming
		return &v
	}
	return cur
}
