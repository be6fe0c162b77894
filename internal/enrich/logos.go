// Package enrich backfills company profile data that the calendar
// pipelines do not carry, currently logo image references.
package enrich

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/quantral/calendar-data/internal/config"
	"github.com/quantral/calendar-data/internal/metrics"
	"github.com/quantral/calendar-data/internal/provider"
)

// Store is the profile persistence the enricher reads and writes.
type Store interface {
	SymbolsMissingLogo(ctx context.Context) ([]string, error)
	SetLogoIfEmpty(ctx context.Context, symbol, logoURL string) (bool, error)
}

// Summary reports one enrichment pass.
type Summary struct {
	Candidates int           `json:"candidates"`
	Updated    int           `json:"updated"`
	Skipped    int           `json:"skipped"`
	Errors     int           `json:"errors"`
	Duration   time.Duration `json:"duration"`
}

// Service resolves missing logos in rate-limited batches.
type Service struct {
	store   Store
	adapter provider.LogoAdapter
	logger  *slog.Logger

	batchSize int
	limiter   *rate.Limiter
}

// New creates a logo enrichment service.
func New(cfg config.EnrichmentConfig, store Store, adapter provider.LogoAdapter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultEnrichBatchSize
	}
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = config.DefaultEnrichRatePerSecond
	}
	return &Service{
		store:     store,
		adapter:   adapter,
		logger:    logger,
		batchSize: batchSize,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Run finds symbols without a stored logo, resolves them through the
// lookup provider in batches, and writes each result only if the slot is
// still empty. A failed batch is counted and skipped; the pass continues
// with the next batch.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	symbols, err := s.store.SymbolsMissingLogo(ctx)
	if err != nil {
		return nil, err
	}
	summary.Candidates = len(symbols)
	if len(symbols) == 0 {
		summary.Duration = time.Since(start)
		return summary, nil
	}

	s.logger.Info("logo enrichment starting",
		"candidates", len(symbols),
		"batch_size", s.batchSize,
	)

	for offset := 0; offset < len(symbols); offset += s.batchSize {
		end := offset + s.batchSize
		if end > len(symbols) {
			end = len(symbols)
		}
		batch := symbols[offset:end]

		if err := s.limiter.Wait(ctx); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		logos, err := s.adapter.Lookup(ctx, batch)
		if err != nil {
			s.logger.Warn("logo lookup failed",
				"provider", s.adapter.Name(),
				"batch_start", offset,
				"batch_size", len(batch),
				"err", err,
			)
			summary.Errors++
			continue
		}

		resolved := make(map[string]string, len(logos))
		for _, logo := range logos {
			resolved[logo.Symbol] = logo.URL
		}

		for _, symbol := range batch {
			url, ok := resolved[symbol]
			if !ok || url == "" {
				summary.Skipped++
				continue
			}
			wrote, err := s.store.SetLogoIfEmpty(ctx, symbol, url)
			if err != nil {
				s.logger.Warn("logo write failed", "symbol", symbol, "err", err)
				summary.Errors++
				continue
			}
			if wrote {
				summary.Updated++
			} else {
				// Another writer filled the slot first.
				summary.Skipped++
			}
		}
	}

	metrics.LogoUpdates(summary.Updated)
	summary.Duration = time.Since(start)

	s.logger.Info("logo enrichment complete",
		"candidates", summary.Candidates,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
		"duration", summary.Duration,
	)

	return summary, nil
}
