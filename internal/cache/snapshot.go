package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mgleavitt/lockquests/internal/models"
	"github.com/mgleavitt/lockquests/pkg/logger"
	"github.com/mgleavitt/lockquests/pkg/metrics"
)

// Storage slots used by the snapshot cache. Exactly three: the serialized
// table, the write timestamp, and the version marker.
const (
	snapshotPayloadKey  = "rooms:snapshot"
	snapshotStoredAtKey = "rooms:snapshot:stored_at"
	snapshotVersionKey  = "rooms:snapshot:version"
)

// DefaultSnapshotTTL bounds how long a cached sheet is trusted before the
// loader fetches a fresh copy.
const DefaultSnapshotTTL = 10 * time.Minute

// SnapshotCache persists the raw spreadsheet between loads so that most
// requests never hit the remote API. Caching is strictly best-effort: every
// storage failure is logged and swallowed, and correctness never depends on
// a cache operation succeeding.
//
// A stored snapshot is honoured only while two conditions hold: the version
// marker matches the running configuration, and the write timestamp is
// younger than the TTL. Expired entries are left in place; the next Write
// overwrites them.
type SnapshotCache struct {
	store   Store
	ttl     time.Duration
	version string
	now     func() time.Time
	log     *zap.Logger
}

// NewSnapshotCache builds a snapshot cache over the supplied store.
func NewSnapshotCache(store Store, ttl time.Duration, version string) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	if version == "" {
		version = "1"
	}

	return &SnapshotCache{
		store:   store,
		ttl:     ttl,
		version: version,
		now:     time.Now,
		log:     logger.WithModule("cache"),
	}
}

// InvalidateIfStaleVersion runs once at startup. When the stored version
// marker differs from the configured one it deletes the payload and
// timestamp slots, then records the new marker. Full invalidation is the
// only migration mechanism; there is no schema transform.
func (c *SnapshotCache) InvalidateIfStaleVersion(ctx context.Context) {
	if c == nil || c.store == nil {
		return
	}

	raw, ok, err := c.store.Get(ctx, snapshotVersionKey)
	if err != nil {
		c.log.Warn("version marker read failed", zap.Error(err))
		return
	}
	if ok && string(raw) == c.version {
		return
	}

	if ok {
		c.log.Info("snapshot version changed, invalidating cache",
			zap.String("stored", string(raw)),
			zap.String("current", c.version),
		)
	}

	if err := c.store.Delete(ctx, snapshotPayloadKey, snapshotStoredAtKey); err != nil {
		c.log.Warn("snapshot invalidation failed", zap.Error(err))
	}
	if err := c.store.Set(ctx, snapshotVersionKey, []byte(c.version), 0); err != nil {
		c.log.Warn("version marker write failed", zap.Error(err))
	}
}

// Read returns the cached table when a timestamp exists and is younger than
// the TTL. Expired or corrupt entries are reported as absent without being
// deleted.
func (c *SnapshotCache) Read(ctx context.Context) (*models.Table, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}

	tsRaw, ok, err := c.store.Get(ctx, snapshotStoredAtKey)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.log.Warn("snapshot timestamp read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	storedAt, err := strconv.ParseInt(string(tsRaw), 10, 64)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.log.Warn("snapshot timestamp malformed", zap.String("raw", string(tsRaw)))
		return nil, false
	}

	if c.now().Sub(time.Unix(storedAt, 0)) >= c.ttl {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	payload, ok, err := c.store.Get(ctx, snapshotPayloadKey)
	if err != nil || !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		if err != nil {
			c.log.Warn("snapshot payload read failed", zap.Error(err))
		}
		return nil, false
	}

	var table models.Table
	if err := json.Unmarshal(payload, &table); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.log.Warn("snapshot payload unmarshal failed", zap.Error(err))
		return nil, false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return &table, true
}

// Write stores the table and stamps it with the current time. Failures are
// logged and swallowed; a missed write only costs a future re-fetch.
func (c *SnapshotCache) Write(ctx context.Context, table *models.Table) {
	if c == nil || c.store == nil || table == nil {
		return
	}

	payload, err := json.Marshal(table)
	if err != nil {
		c.log.Warn("snapshot payload marshal failed", zap.Error(err))
		return
	}

	if err := c.store.Set(ctx, snapshotPayloadKey, payload, 0); err != nil {
		c.log.Warn("snapshot payload write failed", zap.Error(err))
		return
	}

	storedAt := strconv.FormatInt(c.now().Unix(), 10)
	if err := c.store.Set(ctx, snapshotStoredAtKey, []byte(storedAt), 0); err != nil {
		c.log.Warn("snapshot timestamp write failed", zap.Error(err))
	}
}

// WithClock overrides the time source, for tests.
func (c *SnapshotCache) WithClock(now func() time.Time) *SnapshotCache {
	if now != nil {
		c.now = now
	}
	return c
}
