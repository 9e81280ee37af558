package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/session"
)

const jobTimeout = 30 * time.Second

// Refresher refetches the snapshot for the active location.
type Refresher interface {
	ID() string
	Refresh(ctx context.Context) error
}

// Scheduler periodically refreshes the session's active location. It never
// retries a failed bootstrap: with no active location a tick does nothing.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Refresher
	interval  time.Duration
}

// New creates a new Scheduler. An interval of zero disables it.
func New(target Refresher, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		target:    target,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The
// first run happens one interval after Start.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh interval is zero; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("INFO: scheduler: refreshing session %s every %v", s.target.ID(), s.interval)
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	err := s.target.Refresh(ctx)
	switch {
	case errors.Is(err, session.ErrNoLocation):
		log.Println("DEBUG: scheduler: no active location; skipping refresh")
	case errors.Is(err, session.ErrFetchInFlight):
		log.Println("DEBUG: scheduler: fetch in flight; skipping refresh")
	case errors.Is(err, session.ErrSuperseded):
		log.Println("DEBUG: scheduler: refresh superseded by a newer request")
	case err != nil:
		log.Printf("ERROR: scheduler: refresh failed: %v", err)
	default:
		log.Println("scheduler: refreshed active location")
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
