// internal/infrastructure/database/redis/counter.go
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowCounter counts hits per key in fixed windows
type WindowCounter struct {
	rdb    *redis.Client
	prefix string
}

// NewWindowCounter creates a counter whose keys start with prefix
func NewWindowCounter(rdb *redis.Client, prefix string) *WindowCounter {
	return &WindowCounter{rdb: rdb, prefix: prefix}
}

// Hit increments the key's counter and returns the count inside the current
// window. The window starts on the first hit.
func (w *WindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	full := w.prefix + key
	pipe := w.rdb.TxPipeline()
	incr := pipe.Incr(ctx, full)
	pipe.ExpireNX(ctx, full, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count hit: %w", err)
	}
	return incr.Val(), nil
}
