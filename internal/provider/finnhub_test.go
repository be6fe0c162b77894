package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantral/calendar-data/internal/config"
	"github.com/quantral/calendar-data/internal/model"
)

func newTestFinnhub(t *testing.T, handler http.HandlerFunc) *Finnhub {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFinnhub(config.ProviderConfig{
		BaseURL:    srv.URL,
		APIKey:     "test-token",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	}, nil)
}

func TestFinnhubFetchEarnings(t *testing.T) {
	f := newTestFinnhub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/calendar/earnings" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("token") != "test-token" {
			t.Errorf("token = %q", r.URL.Query().Get("token"))
		}
		w.Write([]byte(`{"earningsCalendar": [
			{"symbol": "AAPL", "date": "2025-08-20", "epsActual": null, "epsEstimate": 1.1,
			 "revenueActual": null, "revenueEstimate": 88500000000,
			 "hour": "amc", "quarter": 2, "year": 2025},
			{"symbol": "NVDA", "date": "2025-08-27", "epsEstimate": 0.95,
			 "hour": "", "quarter": 2, "year": 2026}
		]}`))
	})

	events, err := f.FetchEarnings(context.Background(), testWindow())
	if err != nil {
		t.Fatalf("FetchEarnings failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}

	aapl := events[0]
	if aapl.DataProvider != ProviderFinnhub {
		t.Errorf("DataProvider = %q, want finnhub", aapl.DataProvider)
	}
	if aapl.EPSActual != nil {
		t.Errorf("EPSActual = %v, want nil", aapl.EPSActual)
	}
	if aapl.EPSEstimated == nil || *aapl.EPSEstimated != 1.1 {
		t.Errorf("EPSEstimated = %v, want 1.1", aapl.EPSEstimated)
	}
	if aapl.FiscalQuarter == nil || *aapl.FiscalQuarter != 2 || aapl.FiscalYear != 2025 {
		t.Errorf("fiscal = Q%v %d, want Q2 2025", aapl.FiscalQuarter, aapl.FiscalYear)
	}

	nvda := events[1]
	if nvda.Session != model.SessionUnknown {
		t.Errorf("Session = %q, want unknown", nvda.Session)
	}
}

func TestFinnhubFetchEarningsMalformed(t *testing.T) {
	f := newTestFinnhub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>rate limited</html>`))
	})

	if _, err := f.FetchEarnings(context.Background(), testWindow()); err == nil {
		t.Error("expected decode error, got nil")
	}
}
