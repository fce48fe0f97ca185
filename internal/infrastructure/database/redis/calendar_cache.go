package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/logging"
)

// CalendarCache stores published calendars as JSON keyed by
// "{prefix}calendar:{tribunal}:{year}".  It satisfies the application's
// CalendarCache port: every failure degrades to a miss, never an error,
// since losing the cache must not lose the computation.
type CalendarCache struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
}

// CacheOption tunes the cache.
type CacheOption func(*CalendarCache)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) CacheOption {
	return func(c *CalendarCache) { c.prefix = prefix }
}

// WithTTL overrides the entry lifetime.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CalendarCache) { c.ttl = ttl }
}

// NewCalendarCache builds the cache.
func NewCalendarCache(client *Client, log logging.Logger, opts ...CacheOption) *CalendarCache {
	c := &CalendarCache{
		client: client,
		logger: log.Named("calendar-cache"),
		prefix: "prazo:",
		ttl:    6 * time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// KeyFor builds the cache key for a (tribunal, year) pair.
func (c *CalendarCache) KeyFor(tribunalCode string, year int) string {
	return fmt.Sprintf("%scalendar:%s:%d", c.prefix, tribunalCode, year)
}

// GetCalendar returns the cached calendar, or found=false on miss, decode
// failure, or backend failure.
func (c *CalendarCache) GetCalendar(ctx context.Context, tribunalCode string, year int) (*calendar.CourtCalendar, bool) {
	key := c.KeyFor(tribunalCode, year)

	raw, err := c.client.Backend().Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", logging.String("key", key), logging.Err(err))
		}
		return nil, false
	}

	var cal calendar.CourtCalendar
	if err := json.Unmarshal(raw, &cal); err != nil {
		c.logger.Warn("cache entry undecodable, evicting",
			logging.String("key", key), logging.Err(err))
		c.client.Backend().Del(ctx, key)
		return nil, false
	}
	return &cal, true
}

// SetCalendar stores a calendar best-effort.
func (c *CalendarCache) SetCalendar(ctx context.Context, cal *calendar.CourtCalendar) {
	key := c.KeyFor(cal.TribunalCode, cal.Year)

	raw, err := json.Marshal(cal)
	if err != nil {
		c.logger.Warn("cache encode failed", logging.String("key", key), logging.Err(err))
		return
	}
	if err := c.client.Backend().Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", logging.String("key", key), logging.Err(err))
	}
}

// Invalidate drops the cached calendar for a (tribunal, year) pair, used
// after administrative calendar updates.
func (c *CalendarCache) Invalidate(ctx context.Context, tribunalCode string, year int) {
	key := c.KeyFor(tribunalCode, year)
	if err := c.client.Backend().Del(ctx, key).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", logging.String("key", key), logging.Err(err))
	}
}
