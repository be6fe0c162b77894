// Package scheduler runs the sync and enrichment pipelines on fixed
// intervals when interval-driven operation is enabled.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/quantral/calendar-data/internal/config"
)

// Job is one schedulable pipeline run.
type Job func(ctx context.Context)

// Scheduler drives registered jobs on their configured intervals. Each
// job runs once immediately on Start, then on every tick.
type Scheduler struct {
	cfg    config.SchedulerConfig
	logger *slog.Logger

	earnings   Job
	economic   Job
	enrichment Job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler. Nil jobs are skipped.
func New(cfg config.SchedulerConfig, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{cfg: cfg, logger: logger}
}

// OnEarnings registers the earnings sync job.
func (s *Scheduler) OnEarnings(job Job) { s.earnings = job }

// OnEconomic registers the economic sync job.
func (s *Scheduler) OnEconomic(job Job) { s.economic = job }

// OnEnrichment registers the logo enrichment job.
func (s *Scheduler) OnEnrichment(job Job) { s.enrichment = job }

// Start launches one ticker loop per registered job.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.launch("earnings", s.cfg.EarningsInterval, s.earnings)
	s.launch("economic", s.cfg.EconomicInterval, s.economic)
	s.launch("enrichment", s.cfg.EnrichmentInterval, s.enrichment)

	s.logger.Info("scheduler started",
		"earnings_interval", s.cfg.EarningsInterval,
		"economic_interval", s.cfg.EconomicInterval,
		"enrichment_interval", s.cfg.EnrichmentInterval,
	)

	return nil
}

// Stop cancels the loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) launch(name string, interval time.Duration, job Job) {
	if job == nil || interval <= 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Run immediately on start.
		job(s.ctx)

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.logger.Debug("scheduled run", "pipeline", name)
				job(s.ctx)
			}
		}
	}()
}
