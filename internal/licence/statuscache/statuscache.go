// Package statuscache caches derived licence status in Redis. A derived
// status is immutable for a given (stage, document version) pair, so
// entries are keyed by booking id, stage and compound version and never
// invalidated explicitly. Stage is part of the key because handovers and
// modification escalation change the stage without bumping the version.
package statuscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hdc/internal/licence"
	"hdc/internal/licence/status"
	"hdc/pkg/platform/sentinel"
)

// Cache stores derived licence status keyed by booking id, stage and
// compound version. A nil client disables caching and every method becomes
// a no-op.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a Cache backed by the given Redis client. client may be nil.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(bookingID int64, stage licence.Stage, compoundVersion string) string {
	return fmt.Sprintf("status:%d:%s:%s", bookingID, stage, compoundVersion)
}

// Get returns the cached status, or false if the entry is absent or the
// cache is disabled. Redis failures are treated as misses.
func (c *Cache) Get(ctx context.Context, bookingID int64, stage licence.Stage, compoundVersion string) (status.LicenceStatus, bool) {
	if c == nil || c.client == nil {
		return status.LicenceStatus{}, false
	}
	raw, err := c.client.Get(ctx, key(bookingID, stage, compoundVersion)).Bytes()
	if err != nil {
		return status.LicenceStatus{}, false
	}
	var s status.LicenceStatus
	if err := json.Unmarshal(raw, &s); err != nil {
		return status.LicenceStatus{}, false
	}
	return s, true
}

// Put stores the derived status. Failures are ignored, the cache is
// advisory only.
func (c *Cache) Put(ctx context.Context, bookingID int64, stage licence.Stage, compoundVersion string, s status.LicenceStatus) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key(bookingID, stage, compoundVersion), raw, c.ttl).Err()
}

// Ping reports whether the backing Redis is reachable. A disabled cache
// is always healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("status cache: %w", sentinel.ErrUnavailable)
	}
	return nil
}
