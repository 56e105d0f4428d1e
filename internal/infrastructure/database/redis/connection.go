// internal/infrastructure/database/redis/connection.go
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/config"
)

const (
	dialTimeout = 5 * time.Second
	ioTimeout   = 3 * time.Second
	pingRetries = 3
)

// Client holds the shared connection used by the session denylist, the
// dashboard cache and the rate limit counter
type Client struct {
	rdb  *redis.Client
	addr string
}

// NewConnection dials Redis and waits until it answers a PING. The store
// cannot authenticate without it, so a dead server is a startup failure.
func NewConnection(cfg *config.Config) (*Client, error) {
	addr := cfg.GetRedisAddr()
	opts := &redis.Options{
		Addr:            addr,
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		DialTimeout:     dialTimeout,
		ReadTimeout:     ioTimeout,
		WriteTimeout:    ioTimeout,
		PoolTimeout:     ioTimeout + time.Second,
		ConnMaxIdleTime: 10 * time.Minute,
	}
	c := &Client{rdb: redis.NewClient(opts), addr: addr}

	var err error
	for attempt := 1; attempt <= pingRetries; attempt++ {
		if err = c.ping(); err == nil {
			break
		}
		logrus.WithError(err).WithFields(logrus.Fields{
			"addr":    addr,
			"attempt": attempt,
		}).Warn("redis not ready")
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	if err != nil {
		_ = c.rdb.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", addr, err)
	}

	logrus.WithFields(logrus.Fields{"addr": addr, "db": opts.DB}).Info("redis ready")
	return c, nil
}

func (c *Client) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

// GetClient exposes the underlying go-redis client to the stores in this package
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Health answers the readiness probe
func (c *Client) Health(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", c.addr, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
