package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one named periodic task.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	jobs    []Job
	timeout time.Duration
	logger  *slog.Logger
}

// NewScheduler bounds every job run by timeout when timeout > 0.
func NewScheduler(timeout time.Duration, logger *slog.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{
		jobs:    jobs,
		timeout: timeout,
		logger:  logger.With("component", "scheduler"),
	}
}

// Start runs every job immediately and then at its interval until ctx is
// cancelled. It returns ctx.Err() once all job loops have stopped.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "jobs", len(s.jobs))

	var wg sync.WaitGroup
	for _, job := range s.jobs {
		if job.Interval <= 0 {
			s.logger.Warn("job disabled, no interval", "job", job.Name)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loop(ctx, job)
		}()
	}
	wg.Wait()

	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	s.logger.Info("job scheduled", "job", job.Name, "interval", job.Interval)

	s.runJob(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJob(ctx, job)
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Run(runCtx); err != nil {
		s.logger.Error("job failed", "job", job.Name, "error", err)
		return
	}
	s.logger.Debug("job finished", "job", job.Name, "duration", time.Since(start))
}
