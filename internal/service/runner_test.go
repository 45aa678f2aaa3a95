package service

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yzhyun/NextPicker/internal/domain"
)

type blockingRefresher struct {
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingRefresher) RefreshAll(ctx context.Context) domain.RefreshResult {
	b.calls.Add(1)
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return domain.RefreshResult{
		RunID: runIDFromContext(ctx),
		Countries: map[domain.Country]*domain.CountryRefresh{
			domain.CountryUS: {Country: domain.CountryUS, Inserted: 3},
		},
	}
}

type panickingRefresher struct {
	calls atomic.Int32
}

func (p *panickingRefresher) RefreshAll(context.Context) domain.RefreshResult {
	if p.calls.Add(1) == 1 {
		panic("notifier exploded")
	}
	return domain.RefreshResult{RunID: "second"}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_CoalescesConcurrentStarts(t *testing.T) {
	ref := &blockingRefresher{release: make(chan struct{})}
	r := NewRunner(ref, time.Minute, discardLogger())

	first := r.Start(context.Background())
	second := r.Start(context.Background())
	require.Same(t, first, second)
	assert.Same(t, first, r.Current())

	close(ref.release)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := first.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.ID, result.RunID)
	assert.Equal(t, map[domain.Country]int{domain.CountryUS: 3}, result.Inserted())
	assert.Equal(t, int32(1), ref.calls.Load())
	assert.Nil(t, r.Current())
	assert.Same(t, first, r.Last())

	third := r.Start(context.Background())
	assert.NotSame(t, first, third)
	_, err = third.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), ref.calls.Load())
}

func TestRunner_DetachedFromCallerContext(t *testing.T) {
	ref := &blockingRefresher{release: make(chan struct{})}
	r := NewRunner(ref, time.Minute, discardLogger())

	reqCtx, cancelReq := context.WithCancel(context.Background())
	run := r.Start(reqCtx)
	cancelReq()

	select {
	case <-run.Done():
		t.Fatal("run stopped with its caller")
	case <-time.After(50 * time.Millisecond):
	}

	close(ref.release)
	<-run.Done()
}

func TestRun_CancelAndWaitTimeout(t *testing.T) {
	ref := &blockingRefresher{release: make(chan struct{})}
	r := NewRunner(ref, 0, discardLogger())

	run := r.Start(context.Background())

	short, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := run.Wait(short)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	run.Cancel()
	select {
	case <-run.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after Cancel")
	}
}

func TestRunner_PanicReleasesRunner(t *testing.T) {
	ref := &panickingRefresher{}
	r := NewRunner(ref, time.Minute, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := r.Start(context.Background())
	result, err := first.Wait(ctx)
	require.ErrorIs(t, err, ErrRefreshPanicked)
	assert.Contains(t, err.Error(), "notifier exploded")
	assert.Equal(t, first.ID, result.RunID)
	assert.Nil(t, r.Current())
	assert.Same(t, first, r.Last())

	second := r.Start(context.Background())
	require.NotSame(t, first, second)
	_, err = second.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), ref.calls.Load())
}
