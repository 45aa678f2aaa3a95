package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemory_SetGetExpire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	m := NewMemory().WithClock(func() time.Time { return now })

	require.NoError(t, m.Set(ctx, "k", payload{Name: "a", Count: 2}, time.Minute))

	var got payload
	ok, err := m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Name: "a", Count: 2}, got)

	now = now.Add(time.Minute)
	ok, err = m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_MissAndDecodeError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()

	var got payload
	ok, err := m.Get(ctx, "absent", &got)
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "str", "not an object", 0))
	_, err = m.Get(ctx, "str", &got)
	assert.Error(t, err)
}

func TestMemory_EvictAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	m := NewMemory().WithClock(func() time.Time { return now })

	require.NoError(t, m.Set(ctx, "short", 1, time.Second))
	require.NoError(t, m.Set(ctx, "long", 2, time.Hour))
	require.NoError(t, m.Set(ctx, "forever", 3, 0))

	now = now.Add(time.Minute)
	assert.Equal(t, 1, m.EvictExpired())
	assert.Equal(t, 2, m.Len())

	require.NoError(t, m.Clear(ctx))
	assert.Equal(t, 0, m.Len())
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "recent:US:3:50", Key("recent", "US", 3, 50))
}
