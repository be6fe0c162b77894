package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/quantral/calendar-data/internal/categorize"
	"github.com/quantral/calendar-data/internal/config"
	"github.com/quantral/calendar-data/internal/model"
)

// ProviderFRED is the provider id stamped on FRED-sourced records.
const ProviderFRED = "fred"

// FRED adapts the St. Louis Fed observations endpoint. One sub-call is
// made per configured series; sub-calls run under a bounded-concurrency
// semaphore and a shared token bucket so the provider's rate limits are
// respected without ad hoc sleeps. A failing series is skipped, never
// fatal to the adapter.
type FRED struct {
	client  *Client
	apiKey  string
	series  []config.FREDSeries
	limiter *rate.Limiter
	sem     *semaphore.Weighted
	logger  *slog.Logger
}

// NewFRED creates a FRED adapter from explicit configuration.
func NewFRED(cfg config.FREDConfig, logger *slog.Logger) *FRED {
	if logger == nil {
		logger = slog.Default()
	}
	return &FRED{
		client: NewClient(cfg.BaseURL,
			WithTimeout(cfg.Timeout),
			WithRetries(cfg.MaxRetries, time.Second),
			WithLogger(logger),
		),
		apiKey:  cfg.APIKey,
		series:  cfg.Series,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		sem:     semaphore.NewWeighted(cfg.MaxConcurrent),
		logger:  logger,
	}
}

// Name returns the provider id.
func (f *FRED) Name() string { return ProviderFRED }

// fredObservationsResponse is the envelope of GET /fred/series/observations.
type fredObservationsResponse struct {
	Observations []fredObservation `json:"observations"`
}

type fredObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"` // "." when the observation is missing
}

// FetchEconomic fetches observations for every configured series within
// the window and maps them to canonical macro events.
func (f *FRED) FetchEconomic(ctx context.Context, window model.Window) ([]model.EconomicEvent, error) {
	if len(f.series) == 0 {
		return nil, nil
	}

	var (
		mu     sync.Mutex
		events []model.EconomicEvent
		failed int
		wg     sync.WaitGroup
	)

	for _, s := range f.series {
		wg.Add(1)
		go func(s config.FREDSeries) {
			defer wg.Done()

			if err := f.sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer f.sem.Release(1)

			if err := f.limiter.Wait(ctx); err != nil {
				return
			}

			series, err := f.fetchSeries(ctx, s, window)
			if err != nil {
				f.logger.Warn("fred series fetch failed",
					"series", s.ID,
					"err", err,
				)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			mu.Lock()
			events = append(events, series...)
			mu.Unlock()
		}(s)
	}

	wg.Wait()

	// All series down counts as an adapter failure; partial coverage is a
	// normal result.
	if failed == len(f.series) {
		return nil, fmt.Errorf("fred: all %d series failed", len(f.series))
	}

	return events, nil
}

// fetchSeries fetches one series' observations within the window.
func (f *FRED) fetchSeries(ctx context.Context, s config.FREDSeries, window model.Window) ([]model.EconomicEvent, error) {
	query := url.Values{}
	query.Set("series_id", s.ID)
	query.Set("observation_start", window.FromParam())
	query.Set("observation_end", window.ToParam())
	query.Set("file_type", "json")
	query.Set("api_key", f.apiKey)

	var resp fredObservationsResponse
	if err := f.client.get(ctx, "/fred/series/observations", query, &resp); err != nil {
		return nil, err
	}

	cls := categorize.Classify(s.Name)
	now := time.Now().UTC()

	events := make([]model.EconomicEvent, 0, len(resp.Observations))
	var previous *float64
	for _, obs := range resp.Observations {
		ts := ParseTimestamp(obs.Date)
		if ts.IsZero() {
			continue
		}

		actual := parseFREDValue(obs.Value)

		events = append(events, model.EconomicEvent{
			Country:      s.Country,
			Name:         s.Name,
			Period:       ts.Format("Jan 2006"),
			Actual:       actual,
			Previous:     previous,
			Unit:         s.Unit,
			Importance:   cls.Importance,
			Category:     cls.Category,
			Frequency:    categorize.Frequency(s.Name),
			MarketImpact: cls.MarketImpact,
			Timestamp:    ts,
			DataProvider: ProviderFRED,
			LastUpdated:  now,
		})

		if actual != nil {
			previous = actual
		}
	}

	return events, nil
}

// parseFREDValue parses an observation value; "." marks a missing point.
func parseFREDValue(s string) *float64 {
	if s == "" || s == "." {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
