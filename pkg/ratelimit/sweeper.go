package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the expiry sweep every ten minutes.
const DefaultSweepSchedule = "@every 10m"

// Sweeper prunes expired limiter records on a cron schedule, bounding the
// memory held by the caller-key map between process restarts.
type Sweeper struct {
	limiter  *FixedWindow
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	// onSweep, if set, receives the tracked-key count after each sweep.
	// The server wires this to the tracked-keys gauge.
	onSweep func(tracked int)

	mu      sync.Mutex
	running bool
}

// NewSweeper creates a sweeper for the given limiter. An empty schedule
// falls back to DefaultSweepSchedule.
func NewSweeper(limiter *FixedWindow, schedule string) *Sweeper {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &Sweeper{
		limiter:  limiter,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "ratelimit.sweeper"),
	}
}

// OnSweep registers a callback invoked with the tracked-key count after
// every sweep. Must be called before Start.
func (s *Sweeper) OnSweep(fn func(tracked int)) {
	s.onSweep = fn
}

// Start schedules the periodic sweep. The sweeper stops itself when ctx
// is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("sweeper already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("rate limit sweeper started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Sweeper) sweep() {
	removed := s.limiter.Sweep()
	tracked := s.limiter.Len()

	if removed > 0 {
		s.logger.Debug("swept expired rate limit records",
			"removed", removed,
			"tracked_keys", tracked,
		)
	}

	if s.onSweep != nil {
		s.onSweep(tracked)
	}
}

// Stop halts the schedule and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("rate limit sweeper stopped")
}
