// Package cache memoizes computed read results. Values are stored as JSON
// so every backend round-trips them the same way.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Cache interface {
	// Get decodes the value stored under key into dst. It reports false
	// when the key is missing or expired.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// Key joins parts with ':'.
func Key(parts ...any) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return strings.Join(s, ":")
}
