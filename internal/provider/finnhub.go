package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/quantral/calendar-data/internal/config"
	"github.com/quantral/calendar-data/internal/model"
)

// ProviderFinnhub is the provider id stamped on Finnhub-sourced records.
const ProviderFinnhub = "finnhub"

// Finnhub adapts the Finnhub earnings calendar endpoint.
type Finnhub struct {
	client *Client
	apiKey string
	logger *slog.Logger
}

// NewFinnhub creates a Finnhub adapter from explicit configuration.
func NewFinnhub(cfg config.ProviderConfig, logger *slog.Logger) *Finnhub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Finnhub{
		client: NewClient(cfg.BaseURL,
			WithTimeout(cfg.Timeout),
			WithRetries(cfg.MaxRetries, time.Second),
			WithLogger(logger),
		),
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// Name returns the provider id.
func (f *Finnhub) Name() string { return ProviderFinnhub }

// finnhubEarningsResponse is the envelope of GET /api/v1/calendar/earnings.
type finnhubEarningsResponse struct {
	EarningsCalendar []finnhubEarning `json:"earningsCalendar"`
}

type finnhubEarning struct {
	Symbol          string   `json:"symbol"`
	Date            string   `json:"date"`
	EPSActual       *float64 `json:"epsActual"`
	EPSEstimate     *float64 `json:"epsEstimate"`
	RevenueActual   *float64 `json:"revenueActual"`
	RevenueEstimate *float64 `json:"revenueEstimate"`
	Hour            string   `json:"hour"`
	Quarter         int      `json:"quarter"`
	Year            int      `json:"year"`
}

// FetchEarnings fetches the earnings calendar for the window.
func (f *Finnhub) FetchEarnings(ctx context.Context, window model.Window) ([]model.EarningsEvent, error) {
	query := url.Values{}
	query.Set("from", window.FromParam())
	query.Set("to", window.ToParam())
	query.Set("token", f.apiKey)

	var resp finnhubEarningsResponse
	if err := f.client.get(ctx, "/api/v1/calendar/earnings", query, &resp); err != nil {
		return nil, fmt.Errorf("finnhub earnings calendar: %w", err)
	}

	events := make([]model.EarningsEvent, 0, len(resp.EarningsCalendar))
	for _, r := range resp.EarningsCalendar {
		events = append(events, r.toModel())
	}
	return events, nil
}

func (r finnhubEarning) toModel() model.EarningsEvent {
	e := model.EarningsEvent{
		Symbol:           r.Symbol,
		Date:             ParseDate(r.Date),
		Session:          ParseSession(r.Hour),
		EPSActual:        r.EPSActual,
		EPSEstimated:     r.EPSEstimate,
		RevenueActual:    r.RevenueActual,
		RevenueEstimated: r.RevenueEstimate,
		FiscalYear:       r.Year,
		Status:           model.StatusScheduled,
		DataProvider:     ProviderFinnhub,
		LastUpdated:      time.Now().UTC(),
	}
	if r.Quarter != 0 {
		q := r.Quarter
		e.FiscalQuarter = &q
	}
	return e
}
