package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// Memory is a process-local cache. Expired entries are dropped lazily on
// Get and in bulk by EvictExpired.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	e, ok := m.items[key]
	if ok && m.expired(e) {
		delete(m.items, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.data, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value for ttl. ttl <= 0 keeps it until Clear.
func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}

	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	m.items = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// EvictExpired drops every expired entry and returns how many went.
func (m *Memory) EvictExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for k, e := range m.items {
		if m.expired(e) {
			delete(m.items, k)
			n++
		}
	}
	return n
}

// Len counts stored entries, expired ones included until evicted.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !m.now().Before(e.expires)
}
