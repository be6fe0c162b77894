package orchestrator

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/quantral/calendar-data/internal/metrics"
	"github.com/quantral/calendar-data/internal/model"
	"github.com/quantral/calendar-data/internal/provider"
	"github.com/quantral/calendar-data/internal/reconcile"
)

// RunEconomic syncs the macroeconomic calendar over the configured
// lookback/lookahead window around today.
func (s *Service) RunEconomic(ctx context.Context) (*model.RunSummary, []model.EconomicEvent) {
	summary := model.NewRunSummary("economic")
	window := model.WindowAround(s.now().UTC(), s.cfg.EconomicLookbackDays, s.cfg.EconomicLookaheadDays)

	s.logger.Info("economic run started",
		"run_id", summary.RunID,
		"from", window.FromParam(),
		"to", window.ToParam(),
		"providers", len(s.economic),
	)

	summary.State = model.RunFetchingProviders
	batches := make([][]model.EconomicEvent, len(s.economic))

	var wg sync.WaitGroup
	var succeeded, failed atomic.Int64

	for i, adapter := range s.economic {
		wg.Add(1)
		go func(i int, adapter provider.EconomicAdapter) {
			defer wg.Done()

			actx, cancel := context.WithTimeout(ctx, s.cfg.AdapterTimeout)
			defer cancel()

			events, err := adapter.FetchEconomic(actx, window)
			if err != nil {
				s.logger.Warn("economic adapter failed",
					"provider", adapter.Name(),
					"err", err,
				)
				metrics.ProviderFailure("economic", adapter.Name())
				failed.Add(1)
				return
			}

			batches[i] = events
			succeeded.Add(1)
		}(i, adapter)
	}
	wg.Wait()

	summary.SuccessfulProviders = int(succeeded.Load())
	summary.FailedProviders = int(failed.Load())

	summary.State = model.RunReconciling
	records := reconcile.Economic(batches)
	summary.Reconciled = len(records)

	var persistErr error
	if len(records) > 0 {
		summary.State = model.RunPersisting
		persistErr = s.sink.UpsertEconomic(ctx, records)
		if persistErr != nil {
			s.logger.Error("economic upsert failed", "err", persistErr, "count", len(records))
		} else {
			summary.Persisted = len(records)
		}
	}

	summary.Finalize(persistErr)
	metrics.ObserveRun(summary)

	s.logger.Info("economic run complete",
		"run_id", summary.RunID,
		"state", summary.State,
		"reconciled", summary.Reconciled,
		"providers_ok", summary.SuccessfulProviders,
		"providers_failed", summary.FailedProviders,
		"duration", summary.Duration,
	)

	return summary, records
}
