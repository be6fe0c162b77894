package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/quantral/calendar-data/internal/categorize"
	"github.com/quantral/calendar-data/internal/config"
	"github.com/quantral/calendar-data/internal/model"
)

// ProviderFMP is the provider id stamped on FMP-sourced records.
const ProviderFMP = "fmp"

// FMP adapts the Financial Modeling Prep calendar endpoints.
type FMP struct {
	client *Client
	apiKey string
	logger *slog.Logger
}

// NewFMP creates an FMP adapter from explicit configuration.
func NewFMP(cfg config.ProviderConfig, logger *slog.Logger) *FMP {
	if logger == nil {
		logger = slog.Default()
	}
	return &FMP{
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
func (f *FMP) Name() string { return ProviderFMP }

// fmpEarning is one row of GET /api/v3/earning_calendar.
type fmpEarning struct {
	Symbol           string   `json:"symbol"`
	Date             string   `json:"date"`
	EPS              *float64 `json:"eps"`
	EPSEstimated     *float64 `json:"epsEstimated"`
	Revenue          *float64 `json:"revenue"`
	RevenueEstimated *float64 `json:"revenueEstimated"`
	Time             string   `json:"time"`
	FiscalDateEnding string   `json:"fiscalDateEnding"`
}

// FetchEarnings fetches the earnings calendar for the window.
func (f *FMP) FetchEarnings(ctx context.Context, window model.Window) ([]model.EarningsEvent, error) {
	query := url.Values{}
	query.Set("from", window.FromParam())
	query.Set("to", window.ToParam())
	query.Set("apikey", f.apiKey)

	var rows []fmpEarning
	if err := f.client.get(ctx, "/api/v3/earning_calendar", query, &rows); err != nil {
		return nil, fmt.Errorf("fmp earnings calendar: %w", err)
	}

	events := make([]model.EarningsEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.toModel())
	}
	return events, nil
}

func (r fmpEarning) toModel() model.EarningsEvent {
	date := ParseDate(r.Date)

	// Fiscal period comes from the reporting period end when FMP supplies
	// it; the event date is a usable stand-in otherwise.
	periodEnd := ParseDate(r.FiscalDateEnding)
	if periodEnd.IsZero() {
		periodEnd = date
	}
	year, quarter := 0, 0
	if !periodEnd.IsZero() {
		year, quarter = FiscalPeriod(periodEnd)
	}

	e := model.EarningsEvent{
		Symbol:           r.Symbol,
		Date:             date,
		Session:          ParseSession(r.Time),
		EPSActual:        r.EPS,
		EPSEstimated:     r.EPSEstimated,
		RevenueActual:    r.Revenue,
		RevenueEstimated: r.RevenueEstimated,
		FiscalYear:       year,
		Status:           model.StatusScheduled,
		DataProvider:     ProviderFMP,
		LastUpdated:      time.Now().UTC(),
	}
	if quarter != 0 {
		e.FiscalQuarter = &quarter
	}
	return e
}

// fmpEconomicEvent is one row of GET /api/v3/economic_calendar.
type fmpEconomicEvent struct {
	Event    string   `json:"event"`
	Country  string   `json:"country"`
	Date     string   `json:"date"`
	Actual   *float64 `json:"actual"`
	Previous *float64 `json:"previous"`
	Estimate *float64 `json:"estimate"`
	Unit     string   `json:"unit"`
	Impact   string   `json:"impact"`
}

// FetchEconomic fetches the economic calendar for the window.
func (f *FMP) FetchEconomic(ctx context.Context, window model.Window) ([]model.EconomicEvent, error) {
	query := url.Values{}
	query.Set("from", window.FromParam())
	query.Set("to", window.ToParam())
	query.Set("apikey", f.apiKey)

	var rows []fmpEconomicEvent
	if err := f.client.get(ctx, "/api/v3/economic_calendar", query, &rows); err != nil {
		return nil, fmt.Errorf("fmp economic calendar: %w", err)
	}

	events := make([]model.EconomicEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.toModel())
	}
	return events, nil
}

func (r fmpEconomicEvent) toModel() model.EconomicEvent {
	ts := ParseTimestamp(r.Date)
	cls := categorize.Classify(r.Event)

	// Provider-supplied impact overrides the keyword heuristic.
	impact, importance := cls.MarketImpact, cls.Importance
	switch r.Impact {
	case "Low", "low":
		impact, importance = model.ImpactLow, 1
	case "Medium", "medium":
		impact, importance = model.ImpactMedium, 2
	case "High", "high":
		impact, importance = model.ImpactHigh, 3
	}

	return model.EconomicEvent{
		Country:      r.Country,
		Name:         r.Event,
		Period:       ts.Format("Jan 2006"),
		Actual:       r.Actual,
		Previous:     r.Previous,
		Forecast:     r.Estimate,
		Unit:         r.Unit,
		Importance:   importance,
		Category:     cls.Category,
		Frequency:    categorize.Frequency(r.Event),
		MarketImpact: impact,
		Timestamp:    ts,
		DataProvider: ProviderFMP,
		LastUpdated:  time.Now().UTC(),
	}
}

// fmpTranscript is one row of GET /api/v3/earning_call_transcript/{symbol}.
type fmpTranscript struct {
	Symbol  string `json:"symbol"`
	Quarter int    `json:"quarter"`
	Year    int    `json:"year"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// FetchTranscript fetches the earnings call transcript for one quarter.
// Returns (nil, nil) when the provider has no transcript for it.
func (f *FMP) FetchTranscript(ctx context.Context, symbol string, q model.QuarterRef) (*model.Transcript, error) {
	query := url.Values{}
	query.Set("quarter", strconv.Itoa(q.Quarter))
	query.Set("year", strconv.Itoa(q.Year))
	query.Set("apikey", f.apiKey)

	var rows []fmpTranscript
	err := f.client.get(ctx, "/api/v3/earning_call_transcript/"+url.PathEscape(symbol), query, &rows)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fmp transcript %s %s: %w", symbol, q, err)
	}
	if len(rows) == 0 || rows[0].Content == "" {
		return nil, nil
	}

	r := rows[0]
	return &model.Transcript{
		Symbol:        symbol,
		FiscalQuarter: r.Quarter,
		FiscalYear:    r.Year,
		Date:          ParseDate(r.Date),
		Content:       r.Content,
		DataProvider:  ProviderFMP,
		LastUpdated:   time.Now().UTC(),
	}, nil
}
