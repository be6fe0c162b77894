package provider

import (
	"context"

	"github.com/quantral/calendar-data/internal/model"
)

// EarningsAdapter fetches corporate earnings events for a window.
type EarningsAdapter interface {
	Name() string
	FetchEarnings(ctx context.Context, window model.Window) ([]model.EarningsEvent, error)
}

// EconomicAdapter fetches macroeconomic events for a window.
type EconomicAdapter interface {
	Name() string
	FetchEconomic(ctx context.Context, window model.Window) ([]model.EconomicEvent, error)
}

// TranscriptAdapter fetches a single earnings call transcript. A nil
// transcript with nil error means the provider has none for that quarter.
type TranscriptAdapter interface {
	Name() string
	FetchTranscript(ctx context.Context, symbol string, q model.QuarterRef) (*model.Transcript, error)
}

// Logo is one (symbol, image reference) pair from a lookup provider.
type Logo struct {
	Symbol string
	URL    string
}

// LogoAdapter resolves company image references for a batch of symbols.
type LogoAdapter interface {
	Name() string
	Lookup(ctx context.Context, symbols []string) ([]Logo, error)
}
