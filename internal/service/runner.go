package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yzhyun/NextPicker/internal/domain"
)

// ErrRefreshPanicked is returned by Wait when the refresh crashed.
var ErrRefreshPanicked = errors.New("refresh panicked")

type runIDKey struct{}

// WithRunID tags ctx so a refresh started from it reports id as its RunID.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

func runIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// Refresher is satisfied by IngestService.
type Refresher interface {
	RefreshAll(ctx context.Context) domain.RefreshResult
}

// Run is one background refresh.
type Run struct {
	ID        string
	StartedAt time.Time

	cancel context.CancelFunc
	done   chan struct{}
	result domain.RefreshResult
	err    error
}

// Done is closed when the run finishes, whether it completed or was cancelled.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Cancel stops the run. Work already committed stays committed.
func (r *Run) Cancel() {
	r.cancel()
}

// Wait blocks until the run finishes or ctx is done. Giving up on ctx does
// not cancel the run.
func (r *Run) Wait(ctx context.Context) (domain.RefreshResult, error) {
	select {
	case <-r.done:
		return r.result, r.err
	case <-ctx.Done():
		return domain.RefreshResult{}, ctx.Err()
	}
}

// Runner executes refreshes detached from the caller's lifetime and lets at
// most one run at a time.
type Runner struct {
	refresher Refresher
	timeout   time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	current *Run
	last    *Run
}

func NewRunner(refresher Refresher, timeout time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		refresher: refresher,
		timeout:   timeout,
		logger:    logger.With("component", "runner"),
	}
}

// Start begins a refresh, or returns the one already in flight. The run
// keeps ctx's values but not its cancellation.
func (r *Runner) Start(ctx context.Context) *Run {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil {
		r.logger.Debug("refresh already running", "run_id", r.current.ID)
		return r.current
	}

	runCtx := context.WithoutCancel(ctx)
	var cancel context.CancelFunc
	if r.timeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, r.timeout)
	} else {
		runCtx, cancel = context.WithCancel(runCtx)
	}

	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	r.current = run

	go r.execute(WithRunID(runCtx, run.ID), run)

	r.logger.Info("refresh started", "run_id", run.ID)
	return run
}

// execute always releases the runner, even when the refresh panics, so a
// crashed run is never joined by later starts.
func (r *Runner) execute(ctx context.Context, run *Run) {
	defer func() {
		if p := recover(); p != nil {
			run.err = fmt.Errorf("%w: %v", ErrRefreshPanicked, p)
			run.result = domain.RefreshResult{RunID: run.ID}
			r.logger.Error("refresh panicked", "run_id", run.ID, "panic", p)
		}
		run.cancel()

		r.mu.Lock()
		r.current = nil
		r.last = run
		r.mu.Unlock()

		close(run.done)
	}()

	run.result = r.refresher.RefreshAll(ctx)
}

// Current returns the in-flight run, if any.
func (r *Runner) Current() *Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Last returns the most recently finished run, if any.
func (r *Runner) Last() *Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
