package retention

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs the sweep once a day at 03:00 local time.
const DefaultSchedule = "0 0 3 * * *"

// Sweeper removes expired contacts.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Scheduler triggers retention sweeps on a cron schedule. Runs never overlap; a tick
// that fires while a sweep is still in progress is skipped.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
	baseCtx context.Context
	log     *slog.Logger
}

// NewScheduler registers the sweep job. The scheduler is inert until Start.
func NewScheduler(ctx context.Context, sweeper Sweeper, schedule string, timeout time.Duration, log *slog.Logger) (*Scheduler, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if schedule == "" {
		schedule = DefaultSchedule
	}

	s := &Scheduler{
		sweeper: sweeper,
		timeout: timeout,
		baseCtx: ctx,
		log:     log.With("component", "retention"),
	}
	s.cron = cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := s.cron.AddFunc(schedule, func() { _, _ = s.RunOnce() }); err != nil {
		return nil, fmt.Errorf("parse retention schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunOnce performs one sweep immediately.
func (s *Scheduler) RunOnce() (int64, error) {
	ctx := s.baseCtx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	deleted, err := s.sweeper.SweepExpired(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "retention sweep failed", "error", err)
		return 0, err
	}
	s.log.InfoContext(ctx, "retention sweep completed", "deleted", deleted, "duration", time.Since(started))
	return deleted, nil
}

func (s *Scheduler) Start() {
	s.log.Info("retention scheduler started")
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("retention scheduler stopped")
}
