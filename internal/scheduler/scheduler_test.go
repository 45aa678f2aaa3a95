package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	var refreshes, purges atomic.Int32

	s := NewScheduler(time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)),
		Job{Name: "refresh", Interval: 20 * time.Millisecond, Run: func(context.Context) error {
			refreshes.Add(1)
			return nil
		}},
		Job{Name: "purge", Interval: time.Hour, Run: func(context.Context) error {
			purges.Add(1)
			return errors.New("locked")
		}},
		Job{Name: "disabled", Run: func(context.Context) error {
			t.Error("disabled job ran")
			return nil
		}},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := s.Start(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	assert.GreaterOrEqual(t, refreshes.Load(), int32(3))
	assert.Equal(t, int32(1), purges.Load())
}

func TestScheduler_BoundsEachRun(t *testing.T) {
	deadlines := make(chan bool, 1)

	s := NewScheduler(10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)),
		Job{Name: "slow", Interval: time.Hour, Run: func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			<-ctx.Done()
			deadlines <- ok
			return ctx.Err()
		}},
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case ok := <-deadlines:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("job run was not bounded")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
