package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/quantral/calendar-data/internal/config"
	"github.com/quantral/calendar-data/internal/model"
	"github.com/quantral/calendar-data/internal/provider"
)

// Sink is the persistence boundary the orchestrator writes through.
type Sink interface {
	UpsertEarnings(ctx context.Context, events []model.EarningsEvent) error
	UpsertEconomic(ctx context.Context, events []model.EconomicEvent) error
	UpsertTranscripts(ctx context.Context, transcripts []model.Transcript) error
	ListDistinctSymbols(ctx context.Context) ([]string, error)
}

// Service coordinates adapters, reconciliation, and persistence.
type Service struct {
	cfg    config.SyncConfig
	logger *slog.Logger

	earnings    []provider.EarningsAdapter
	economic    []provider.EconomicAdapter
	transcripts provider.TranscriptAdapter
	sink        Sink

	// Token bucket for targeted per-(symbol, quarter) transcript fetches.
	transcriptLimiter *rate.Limiter

	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEarningsAdapters sets the corporate-event providers.
func WithEarningsAdapters(adapters ...provider.EarningsAdapter) Option {
	return func(s *Service) { s.earnings = adapters }
}

// WithEconomicAdapters sets the macro-event providers.
func WithEconomicAdapters(adapters ...provider.EconomicAdapter) Option {
	return func(s *Service) { s.economic = adapters }
}

// WithTranscriptAdapter sets the transcript provider.
func WithTranscriptAdapter(a provider.TranscriptAdapter) Option {
	return func(s *Service) { s.transcripts = a }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the time source; tests pin the fetch window with it.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates the orchestrator.
func New(cfg config.SyncConfig, sink Sink, opts ...Option) *Service {
	s := &Service{
		cfg:               cfg,
		sink:              sink,
		logger:            slog.Default(),
		transcriptLimiter: rate.NewLimiter(rate.Limit(5), 1),
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
