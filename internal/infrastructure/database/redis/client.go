// Package redis provides the Redis client and the calendar read-through
// cache built on it.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jurisdesk/prazo-engine/internal/config"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/logging"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// Client wraps a standalone go-redis client with logging and health checks.
type Client struct {
	rdb    *redis.Client
	logger logging.Logger
}

// NewClient connects and verifies the Redis backend.
func NewClient(cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "redis connection failed")
	}

	log.Info("connected to Redis", logging.String("addr", cfg.Addr), logging.Int("db", cfg.DB))
	return &Client{rdb: rdb, logger: log}, nil
}

// NewClientWithBackend wraps an existing go-redis client (for tests).
func NewClientWithBackend(rdb *redis.Client, log logging.Logger) *Client {
	return &Client{rdb: rdb, logger: log}
}

// Backend exposes the underlying go-redis client.
func (c *Client) Backend() *redis.Client { return c.rdb }

// HealthCheck verifies Redis reachability.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "redis health check failed")
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
