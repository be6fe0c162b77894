package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/quantral/calendar-data/internal/metrics"
	"github.com/quantral/calendar-data/internal/model"
)

// TranscriptRequest targets a transcript run. Empty fields fall back to
// the persisted symbol universe and the most recent quarter.
type TranscriptRequest struct {
	Symbols              []string           `json:"symbols,omitempty"`
	Quarters             []model.QuarterRef `json:"quarters,omitempty"`
	ForceHistoricalFetch bool               `json:"forceHistoricalFetch,omitempty"`
}

// RunTranscripts fetches earnings call transcripts for the requested
// (symbol, quarter) pairs. With no symbols persisted or requested the run
// short-circuits to a "no data" summary without touching any provider.
func (s *Service) RunTranscripts(ctx context.Context, req TranscriptRequest) (*model.RunSummary, []model.Transcript) {
	summary := model.NewRunSummary("transcripts")

	if s.transcripts == nil {
		err := errors.New("no transcript provider configured")
		s.logger.Error("transcript run rejected", "err", err)
		summary.Errors++
		summary.Finalize(err)
		metrics.ObserveRun(summary)
		return summary, nil
	}

	symbols := req.Symbols
	if len(symbols) == 0 {
		var err error
		symbols, err = s.sink.ListDistinctSymbols(ctx)
		if err != nil {
			s.logger.Error("listing symbol universe failed", "err", err)
			summary.Errors++
			summary.Finalize(err)
			metrics.ObserveRun(summary)
			return summary, nil
		}
	}
	summary.TotalSymbols = len(symbols)

	if len(symbols) == 0 {
		s.logger.Info("transcript run skipped: empty symbol universe", "run_id", summary.RunID)
		summary.Finalize(nil)
		metrics.ObserveRun(summary)
		return summary, nil
	}

	quarters := req.Quarters
	if len(quarters) == 0 {
		n := 1
		if req.ForceHistoricalFetch {
			n = s.cfg.TranscriptQuarters
		}
		quarters = LastQuarters(s.now().UTC(), n)
	}

	summary.State = model.RunFetchingProviders

	var collected []model.Transcript
	for _, symbol := range symbols {
		for _, q := range quarters {
			if err := s.transcriptLimiter.Wait(ctx); err != nil {
				summary.Errors++
				summary.Finalize(err)
				metrics.ObserveRun(summary)
				return summary, collected
			}

			tr, err := s.transcripts.FetchTranscript(ctx, symbol, q)
			if err != nil {
				s.logger.Warn("transcript fetch failed",
					"symbol", symbol,
					"quarter", q.String(),
					"err", err,
				)
				summary.Errors++
				continue
			}
			if tr == nil {
				// Provider has no transcript for this quarter yet.
				continue
			}
			collected = append(collected, *tr)
		}
	}

	if summary.Errors < len(symbols)*len(quarters) {
		summary.SuccessfulProviders = 1
	} else {
		summary.FailedProviders = 1
	}

	summary.State = model.RunReconciling
	summary.Reconciled = len(collected)

	var persistErr error
	if len(collected) > 0 {
		summary.State = model.RunPersisting
		persistErr = s.sink.UpsertTranscripts(ctx, collected)
		if persistErr != nil {
			s.logger.Error("transcript upsert failed", "err", persistErr, "count", len(collected))
		} else {
			summary.Persisted = len(collected)
		}
	}

	summary.Finalize(persistErr)
	metrics.ObserveRun(summary)

	s.logger.Info("transcript run complete",
		"run_id", summary.RunID,
		"state", summary.State,
		"symbols", summary.TotalSymbols,
		"fetched", len(collected),
		"errors", summary.Errors,
		"duration", summary.Duration,
	)

	return summary, collected
}

// LastQuarters returns the n calendar quarters ending with the one before
// now, most recent first. The current quarter has no reported earnings
// call yet, so it is excluded.
func LastQuarters(now time.Time, n int) []model.QuarterRef {
	year := now.Year()
	quarter := (int(now.Month())-1)/3 + 1

	out := make([]model.QuarterRef, 0, n)
	for i := 0; i < n; i++ {
		quarter--
		if quarter == 0 {
			quarter = 4
			year--
		}
		out = append(out, model.QuarterRef{Quarter: quarter, Year: year})
	}
	return out
}
