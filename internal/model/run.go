package model

import (
	"time"

	"github.com/google/uuid"
)

// RunState tracks where an orchestrator run is in its lifecycle.
type RunState string

const (
	RunIdle              RunState = "idle"
	RunFetchingProviders RunState = "fetching_providers"
	RunReconciling       RunState = "reconciling"
	RunPersisting        RunState = "persisting"
	RunSucceeded         RunState = "succeeded"
	RunPartiallyFailed   RunState = "partially_failed"
	RunFailed            RunState = "failed"
)

// RunSummary is the structured result of one pipeline run. Every
// invocation produces one, including partial and total failures.
type RunSummary struct {
	RunID    uuid.UUID `json:"run_id"`
	Pipeline string    `json:"pipeline"`
	State    RunState  `json:"state"`

	TotalSymbols        int `json:"total_symbols,omitempty"`
	SuccessfulProviders int `json:"successful_providers"`
	FailedProviders     int `json:"failed_providers"`
	Reconciled          int `json:"reconciled"`
	Persisted           int `json:"persisted"`
	Errors              int `json:"errors"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// NewRunSummary seeds a summary for a starting run.
func NewRunSummary(pipeline string) *RunSummary {
	return &RunSummary{
		RunID:     uuid.New(),
		Pipeline:  pipeline,
		State:     RunIdle,
		StartedAt: time.Now().UTC(),
	}
}

// Finalize resolves the terminal state from the run's counters. A run is
// PartiallyFailed when at least one provider failed but usable records were
// still reconciled and persisted; Failed when nothing usable came through.
func (s *RunSummary) Finalize(persistErr error) {
	s.Duration = time.Since(s.StartedAt)

	switch {
	case persistErr != nil:
		s.State = RunFailed
		s.Errors++
	case s.Reconciled == 0:
		s.State = RunFailed
	case s.FailedProviders > 0:
		s.State = RunPartiallyFailed
	default:
		s.State = RunSucceeded
	}
}

// NoData reports whether the run ended with nothing to do, as opposed to
// something breaking. Callers map this to a distinguishable "no data"
// response rather than an error.
func (s *RunSummary) NoData() bool {
	return s.Reconciled == 0 && s.Errors == 0 && s.FailedProviders == 0
}
