package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quantral/calendar-data/internal/config"
)

func TestSchedulerRunsImmediatelyAndOnTick(t *testing.T) {
	var runs atomic.Int32

	s := New(config.SchedulerConfig{EarningsInterval: 20 * time.Millisecond}, nil)
	s.OnEarnings(func(ctx context.Context) { runs.Add(1) })

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("runs = %d, want >= 2 (immediate + tick)", runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestSchedulerSkipsUnregisteredJobs(t *testing.T) {
	var runs atomic.Int32

	s := New(config.SchedulerConfig{
		EarningsInterval:   10 * time.Millisecond,
		EconomicInterval:   10 * time.Millisecond,
		EnrichmentInterval: 10 * time.Millisecond,
	}, nil)
	s.OnEconomic(func(ctx context.Context) { runs.Add(1) })

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(35 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if runs.Load() < 1 {
		t.Error("registered economic job never ran")
	}
}

func TestSchedulerStopCancelsJobContext(t *testing.T) {
	cancelled := make(chan struct{})

	s := New(config.SchedulerConfig{EarningsInterval: time.Hour}, nil)
	s.OnEarnings(func(ctx context.Context) {
		go func() {
			<-ctx.Done()
			close(cancelled)
		}()
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("job context was not cancelled on Stop")
	}
}
