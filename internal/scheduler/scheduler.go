// Package scheduler drives the periodic sync cycle: pull new mail, then
// fire due reminders. It owns the only background timer in the process.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mailmind/mailmind/internal/entity"
	"github.com/mailmind/mailmind/internal/service"
)

const (
	DefaultInterval   = 15 * time.Minute
	DefaultFetchLimit = 25

	// How long Stop waits for an in-flight cycle before abandoning it, so
	// process shutdown can never hang on a stalled fetch.
	stopTimeout = 5 * time.Second
)

// Config is read through a ConfigSource: the fetch limit is read fresh on
// every cycle, the interval once per Start.
type Config struct {
	Interval   time.Duration
	FetchLimit int
}

func (c Config) normalized() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.FetchLimit <= 0 {
		c.FetchLimit = DefaultFetchLimit
	}
	return c
}

// ConfigSource supplies the current scheduling configuration. Implementations
// may read live configuration; missing values fall back to the defaults.
type ConfigSource func() Config

// CycleResult describes the outcome of one cycle. Job errors are recorded,
// not propagated: a failed sync never prevents the due check.
type CycleResult struct {
	StartedAt time.Time
	Duration  time.Duration
	Ingested  int
	Fired     int
	SyncErr   error
	FireErr   error
}

type Scheduler struct {
	emails    service.EmailUseCase
	reminders service.ReminderUseCase
	conf      ConfigSource

	mu      sync.Mutex // lifecycle state
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	cycleMu sync.Mutex // overlap guard: at most one cycle at a time

	lastMu sync.Mutex
	last   *CycleResult
}

func New(emails service.EmailUseCase, reminders service.ReminderUseCase, conf ConfigSource) *Scheduler {
	if conf == nil {
		conf = func() Config { return Config{} }
	}
	return &Scheduler{
		emails:    emails,
		reminders: reminders,
		conf:      conf,
	}
}

// Start arms the recurring timer and runs the first cycle immediately.
// Calling Start while already running is a no-op. The interval is read once
// here; changing it takes effect on the next stopped-to-running transition.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		logrus.Info("Scheduler already running")
		return
	}

	interval := s.conf().normalized().Interval
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(ctx, s.done, interval)
	logrus.Infof("Scheduler started with interval %s", interval)
}

// Stop cancels the timer and waits, bounded, for an in-flight cycle. No new
// cycle starts after Stop returns. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		logrus.Info("Scheduler is not running")
		return
	}
	s.cancel()
	done := s.done
	s.running = false
	s.mu.Unlock()

	select {
	case <-done:
	case <-time.After(stopTimeout):
		logrus.Warn("Scheduler: in-flight cycle did not finish in time, abandoning it")
	}
	logrus.Info("Scheduler stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastCycle returns the result of the most recent cycle, or nil if none ran.
func (s *Scheduler) LastCycle() *CycleResult {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	if s.last == nil {
		return nil
	}
	result := *s.last
	return &result
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}, interval time.Duration) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A tick and the cancellation can be ready at the same time;
			// never start a cycle once Stop has cancelled.
			if ctx.Err() != nil {
				return
			}
			s.cycle(ctx)
		}
	}
}

func (s *Scheduler) cycle(ctx context.Context) {
	if _, err := s.RunCycle(ctx); errors.Is(err, entity.ErrCycleInProgress) {
		logrus.Warn("Scheduler: previous cycle still running, tick skipped")
	}
}

// RunCycle executes one cycle: mail sync first, then the due check, so a
// freshly synced message is already stored when a notification references
// it. Returns entity.ErrCycleInProgress if another cycle is executing; the
// jobs are never run concurrently because both mutate shared stores.
func (s *Scheduler) RunCycle(ctx context.Context) (*CycleResult, error) {
	if !s.cycleMu.TryLock() {
		return nil, entity.ErrCycleInProgress
	}
	defer s.cycleMu.Unlock()

	cfg := s.conf().normalized()
	result := &CycleResult{StartedAt: time.Now().UTC()}

	ingested, err := s.emails.SyncOnce(ctx, cfg.FetchLimit)
	if err != nil {
		// Transient by assumption; the next cycle is the retry.
		logrus.Errorf("Mail sync failed: %v", err)
		result.SyncErr = err
	}
	result.Ingested = ingested

	fired, err := s.reminders.FireDue(ctx)
	if err != nil {
		logrus.Errorf("Reminder due check failed: %v", err)
		result.FireErr = err
	}
	result.Fired = fired

	result.Duration = time.Since(result.StartedAt)

	s.lastMu.Lock()
	s.last = result
	s.lastMu.Unlock()

	return result, nil
}
