package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/session"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) ID() string { return "test" }

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestZeroIntervalDisablesScheduler(t *testing.T) {
	r := &countingRefresher{}
	s := New(r, 0)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	time.Sleep(50 * time.Millisecond)
	if r.calls.Load() != 0 {
		t.Fatal("expected no refresh with a zero interval")
	}
}

func TestRunSwallowsErrors(t *testing.T) {
	for _, err := range []error{nil, session.ErrNoLocation, session.ErrFetchInFlight, session.ErrSuperseded, errors.New("boom")} {
		r := &countingRefresher{err: err}
		New(r, time.Minute).run()
		if r.calls.Load() != 1 {
			t.Fatalf("expected exactly one refresh for %v", err)
		}
	}
}

func TestSchedulerRefreshesPeriodically(t *testing.T) {
	r := &countingRefresher{err: session.ErrNoLocation}
	s := New(r, 100*time.Millisecond)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for r.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected at least two refreshes, got %d", r.calls.Load())
		}
		time.Sleep(20 * time.Millisecond)
	}
}
