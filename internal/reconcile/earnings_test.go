package reconcile

import (
	"testing"
	"time"

	"github.com/quantral/calendar-data/internal/model"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func earningsRec(provider string, mut func(*model.EarningsEvent)) model.EarningsEvent {
	e := model.EarningsEvent{
		Symbol:        "AAPL",
		Date:          time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		FiscalYear:    2025,
		FiscalQuarter: iptr(2),
		DataProvider:  provider,
	}
	if mut != nil {
		mut(&e)
	}
	return e
}

func TestEarningsFirstNonEmptyWins(t *testing.T) {
	a := earningsRec("fmp", func(e *model.EarningsEvent) {
		e.RevenueActual = fptr(4.2)
	})
	b := earningsRec("finnhub", func(e *model.EarningsEvent) {
		e.EPSActual = fptr(1.5)
	})

	check := func(t *testing.T, out []model.EarningsEvent) {
		t.Helper()
		if len(out) != 1 {
			t.Fatalf("len(out) = %d, want 1", len(out))
		}
		m := out[0]
		if m.EPSActual == nil || *m.EPSActual != 1.5 {
			t.Errorf("EPSActual = %v, want 1.5", m.EPSActual)
		}
		if m.RevenueActual == nil || *m.RevenueActual != 4.2 {
			t.Errorf("RevenueActual = %v, want 4.2", m.RevenueActual)
		}
	}

	// Never null-overwrites-value regardless of input order.
	t.Run("a then b", func(t *testing.T) {
		check(t, Earnings([][]model.EarningsEvent{{a}, {b}}))
	})
	t.Run("b then a", func(t *testing.T) {
		check(t, Earnings([][]model.EarningsEvent{{b}, {a}}))
	})
}

func TestEarningsProviderUnion(t *testing.T) {
	a := earningsRec("fmp", nil)
	b := earningsRec("finnhub", nil)

	out := Earnings([][]model.EarningsEvent{{a}, {b}})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].DataProvider != "fmp,finnhub" {
		t.Errorf("DataProvider = %q, want %q", out[0].DataProvider, "fmp,finnhub")
	}
}

func TestEarningsSurprise(t *testing.T) {
	t.Run("both operands present", func(t *testing.T) {
		a := earningsRec("fmp", func(e *model.EarningsEvent) {
			e.EPSActual = fptr(1.20)
			e.EPSEstimated = fptr(1.00)
		})

		out := Earnings([][]model.EarningsEvent{{a}})
		m := out[0]
		if m.EPSSurprise == nil || !almostEqual(*m.EPSSurprise, 0.20) {
			t.Errorf("EPSSurprise = %v, want 0.20", m.EPSSurprise)
		}
		if m.EPSSurprisePercent == nil || !almostEqual(*m.EPSSurprisePercent, 20.0) {
			t.Errorf("EPSSurprisePercent = %v, want 20.0", m.EPSSurprisePercent)
		}
	})

	t.Run("operand missing", func(t *testing.T) {
		a := earningsRec("fmp", func(e *model.EarningsEvent) {
			e.EPSEstimated = fptr(1.00)
		})

		out := Earnings([][]model.EarningsEvent{{a}})
		if out[0].EPSSurprise != nil || out[0].EPSSurprisePercent != nil {
			t.Errorf("surprise fields should stay nil with a missing operand, got %v / %v",
				out[0].EPSSurprise, out[0].EPSSurprisePercent)
		}
	})

	t.Run("operands from different providers", func(t *testing.T) {
		a := earningsRec("fmp", func(e *model.EarningsEvent) {
			e.EPSActual = fptr(1.20)
		})
		b := earningsRec("finnhub", func(e *model.EarningsEvent) {
			e.EPSEstimated = fptr(1.00)
		})

		out := Earnings([][]model.EarningsEvent{{a}, {b}})
		m := out[0]
		if m.EPSSurprise == nil || !almostEqual(*m.EPSSurprise, 0.20) {
			t.Errorf("EPSSurprise = %v, want 0.20", m.EPSSurprise)
		}
	})

	t.Run("already populated is not recomputed", func(t *testing.T) {
		a := earningsRec("fmp", func(e *model.EarningsEvent) {
			e.EPSActual = fptr(1.20)
			e.EPSEstimated = fptr(1.00)
			e.EPSSurprise = fptr(0.99)
			e.EPSSurprisePercent = fptr(99.0)
		})

		out := Earnings([][]model.EarningsEvent{{a}})
		if *out[0].EPSSurprise != 0.99 || *out[0].EPSSurprisePercent != 99.0 {
			t.Errorf("provider-supplied surprise overwritten: %v / %v",
				*out[0].EPSSurprise, *out[0].EPSSurprisePercent)
		}
	})

	t.Run("zero estimate skips percent", func(t *testing.T) {
		a := earningsRec("fmp", func(e *model.EarningsEvent) {
			e.EPSActual = fptr(0.50)
			e.EPSEstimated = fptr(0)
		})

		out := Earnings([][]model.EarningsEvent{{a}})
		if out[0].EPSSurprise == nil || *out[0].EPSSurprise != 0.50 {
			t.Errorf("EPSSurprise = %v, want 0.50", out[0].EPSSurprise)
		}
		if out[0].EPSSurprisePercent != nil {
			t.Errorf("EPSSurprisePercent = %v, want nil on zero estimate", *out[0].EPSSurprisePercent)
		}
	})
}

func TestEarningsKeyDiscrimination(t *testing.T) {
	q2 := earningsRec("fmp", nil)
	q3 := earningsRec("finnhub", func(e *model.EarningsEvent) {
		e.FiscalQuarter = iptr(3)
	})

	out := Earnings([][]model.EarningsEvent{{q2}, {q3}})
	if len(out) != 2 {
		t.Fatalf("records with different fiscal quarters merged: len(out) = %d, want 2", len(out))
	}
}

func TestEarningsDropsRecordsMissingKeyFields(t *testing.T) {
	good := earningsRec("fmp", nil)
	noSymbol := earningsRec("fmp", func(e *model.EarningsEvent) { e.Symbol = "" })
	noYear := earningsRec("finnhub", func(e *model.EarningsEvent) { e.FiscalYear = 0 })
	noDate := earningsRec("finnhub", func(e *model.EarningsEvent) { e.Date = time.Time{} })

	out := Earnings([][]model.EarningsEvent{{good, noSymbol}, {noYear, noDate}})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
}

func TestEarningsMergeIdempotence(t *testing.T) {
	batches := [][]model.EarningsEvent{
		{
			earningsRec("fmp", func(e *model.EarningsEvent) {
				e.EPSActual = fptr(1.2)
				e.EPSEstimated = fptr(1.0)
				e.Session = model.SessionAfterClose
			}),
		},
		{
			earningsRec("finnhub", func(e *model.EarningsEvent) {
				e.RevenueEstimated = fptr(88e9)
			}),
		},
	}

	first := Earnings(batches)
	second := Earnings(batches)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		// Field-for-field identical except LastUpdated.
		a.LastUpdated, b.LastUpdated = time.Time{}, time.Time{}
		if !earningsEqual(a, b) {
			t.Errorf("run %d differs:\n%+v\n%+v", i, a, b)
		}
	}
}

func TestEarningsSeedDefaults(t *testing.T) {
	a := earningsRec("fmp", func(e *model.EarningsEvent) {
		e.Session = ""
		e.Status = ""
	})

	out := Earnings([][]model.EarningsEvent{{a}})
	if out[0].Session != model.SessionUnknown {
		t.Errorf("Session = %q, want unknown default", out[0].Session)
	}
	if out[0].Status != model.StatusScheduled {
		t.Errorf("Status = %q, want scheduled default", out[0].Status)
	}
	if out[0].TranscriptAvailable {
		t.Error("TranscriptAvailable should default to false")
	}
}

func TestEarningsNilBatchesAbsent(t *testing.T) {
	out := Earnings([][]model.EarningsEvent{nil, {earningsRec("fmp", nil)}, nil})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].DataProvider != "fmp" {
		t.Errorf("DataProvider = %q, want fmp", out[0].DataProvider)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func earningsEqual(a, b model.EarningsEvent) bool {
	if a.Symbol != b.Symbol || a.Exchange != b.Exchange || !a.Date.Equal(b.Date) ||
		a.Session != b.Session || a.FiscalYear != b.FiscalYear ||
		a.Status != b.Status || a.TranscriptAvailable != b.TranscriptAvailable ||
		a.DataProvider != b.DataProvider {
		return false
	}
	if !intPtrEqual(a.FiscalQuarter, b.FiscalQuarter) {
		return false
	}
	pairs := [][2]*float64{
		{a.EPSActual, b.EPSActual},
		{a.EPSEstimated, b.EPSEstimated},
		{a.RevenueActual, b.RevenueActual},
		{a.RevenueEstimated, b.RevenueEstimated},
		{a.EPSSurprise, b.EPSSurprise},
		{a.EPSSurprisePercent, b.EPSSurprisePercent},
	}
	for _, p := range pairs {
		if !floatPtrEqual(p[0], p[1]) {
			return false
		}
	}
	return true
}

func floatPtrEqual(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func intPtrEqual(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}
