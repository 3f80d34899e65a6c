// ABOUTME: Cron-driven auto-sync that pushes local data on a fixed schedule.
// ABOUTME: Each scheduled push is retried with a fixed backoff before being recorded as failed.
package syncer

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/2389-research/contentai/internal/logging"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Pusher is what the scheduler runs on every tick.
type Pusher interface {
	Push(ctx context.Context) error
}

// PusherFunc adapts a function to Pusher.
type PusherFunc func(ctx context.Context) error

// Push calls f.
func (f PusherFunc) Push(ctx context.Context) error { return f(ctx) }

// Scheduler runs a Pusher on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	pusher Pusher
	retry  RetryConfig
	spec   string

	mu      sync.Mutex
	running bool
}

// NewScheduler validates frequency and prepares a scheduler.
func NewScheduler(frequency string, pusher Pusher, retry RetryConfig) (*Scheduler, error) {
	spec, err := ScheduleSpec(frequency)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		cron:   cron.New(cron.WithParser(cronParser), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		pusher: pusher,
		retry:  retry,
		spec:   spec,
	}, nil
}

// Spec returns the resolved cron spec.
func (s *Scheduler) Spec() string {
	return s.spec
}

// RunOnce performs one push with retries. Overlapping runs are skipped.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logging.Log(ctx).Layer("sync").Op("auto").Warn("previous sync still running, skipping")
		return nil
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	return RetryOperation(ctx, s.retry, func() error {
		return s.pusher.Push(ctx)
	})
}

// Run schedules pushes and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.RunOnce(ctx); err != nil {
			logging.Log(ctx).Layer("sync").Op("auto").Err(err).Error("scheduled sync failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logging.Log(ctx).Layer("sync").Op("auto").Str("schedule", s.spec).Info("auto-sync started")

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	return nil
}
