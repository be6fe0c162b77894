package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/quantral/calendar-data/internal/config"
)

// ProviderLogo is the provider id for the image lookup source.
const ProviderLogo = "fmp-profile"

// LogoClient resolves company image references through the FMP company
// profile endpoint, which accepts comma-separated symbol batches.
type LogoClient struct {
	client *Client
	apiKey string
	logger *slog.Logger
}

// NewLogoClient creates a logo lookup adapter.
func NewLogoClient(cfg config.ProviderConfig, logger *slog.Logger) *LogoClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogoClient{
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
func (l *LogoClient) Name() string { return ProviderLogo }

// fmpProfile is one row of GET /api/v3/profile/{symbols}.
type fmpProfile struct {
	Symbol string `json:"symbol"`
	Image  string `json:"image"`
}

// Lookup resolves image references for a batch of symbols. Symbols the
// provider does not know are simply absent from the result.
func (l *LogoClient) Lookup(ctx context.Context, symbols []string) ([]Logo, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	query := url.Values{}
	query.Set("apikey", l.apiKey)

	escaped := make([]string, len(symbols))
	for i, s := range symbols {
		escaped[i] = url.PathEscape(s)
	}
	path := "/api/v3/profile/" + strings.Join(escaped, ",")

	var rows []fmpProfile
	if err := l.client.get(ctx, path, query, &rows); err != nil {
		return nil, fmt.Errorf("profile lookup: %w", err)
	}

	logos := make([]Logo, 0, len(rows))
	for _, r := range rows {
		if r.Symbol == "" || r.Image == "" {
			continue
		}
		logos = append(logos, Logo{Symbol: r.Symbol, URL: r.Image})
	}
	return logos, nil
}
