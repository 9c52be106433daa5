package cache

import (
	"context"
	"time"
)

// Store represents a shared key/value cache interface used across the
// application. The snapshot cache persists the fetched spreadsheet through it
// and the rate limiter uses the counter operation. A ttl of zero means the
// value does not expire at the store level.
type Store interface {
	IncrementWithTTL(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, keys ...string) error
}
