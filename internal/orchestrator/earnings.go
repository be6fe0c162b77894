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

// RunEarnings syncs the corporate earnings calendar: today through the
// configured lookahead.
func (s *Service) RunEarnings(ctx context.Context) (*model.RunSummary, []model.EarningsEvent) {
	summary := model.NewRunSummary("earnings")
	window := model.WindowAhead(s.now().UTC(), s.cfg.EarningsLookaheadDays)

	s.logger.Info("earnings run started",
		"run_id", summary.RunID,
		"from", window.FromParam(),
		"to", window.ToParam(),
		"providers", len(s.earnings),
	)

	summary.State = model.RunFetchingProviders
	batches := make([][]model.EarningsEvent, len(s.earnings))

	var wg sync.WaitGroup
	var succeeded, failed atomic.Int64

	// Settle-all join: each adapter gets its own timeout and its own
	// result slot; one failure never cancels the siblings.
	for i, adapter := range s.earnings {
		wg.Add(1)
		go func(i int, adapter provider.EarningsAdapter) {
			defer wg.Done()

			actx, cancel := context.WithTimeout(ctx, s.cfg.AdapterTimeout)
			defer cancel()

			events, err := adapter.FetchEarnings(actx, window)
			if err != nil {
				s.logger.Warn("earnings adapter failed",
					"provider", adapter.Name(),
					"err", err,
				)
				metrics.ProviderFailure("earnings", adapter.Name())
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
	records := reconcile.Earnings(batches)
	summary.Reconciled = len(records)
	summary.TotalSymbols = countSymbols(records)

	var persistErr error
	if len(records) > 0 {
		summary.State = model.RunPersisting
		persistErr = s.sink.UpsertEarnings(ctx, records)
		if persistErr != nil {
			s.logger.Error("earnings upsert failed", "err", persistErr, "count", len(records))
		} else {
			summary.Persisted = len(records)
		}
	}

	summary.Finalize(persistErr)
	metrics.ObserveRun(summary)

	s.logger.Info("earnings run complete",
		"run_id", summary.RunID,
		"state", summary.State,
		"symbols", summary.TotalSymbols,
		"reconciled", summary.Reconciled,
		"providers_ok", summary.SuccessfulProviders,
		"providers_failed", summary.FailedProviders,
		"duration", summary.Duration,
	)

	return summary, records
}

func countSymbols(records []model.EarningsEvent) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.Symbol] = struct{}{}
	}
	return len(seen)
}
