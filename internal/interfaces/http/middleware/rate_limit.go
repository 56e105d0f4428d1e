// internal/interfaces/http/middleware/rate_limit.go
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HitCounter counts requests per key in a fixed window
type HitCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter limits requests per client IP. Counting happens in Redis so
// every instance shares the budget; while Redis is unreachable each instance
// falls back to its own token buckets.
type RateLimiter struct {
	counter HitCounter
	limit   int
	window  time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per IP. counter may be nil.
func NewRateLimiter(counter HitCounter, perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 100
	}
	if burst <= 0 {
		burst = perMinute
	}
	return &RateLimiter{
		counter:  counter,
		limit:    perMinute,
		window:   time.Minute,
		visitors: make(map[string]*visitor),
		burst:    burst,
	}
}

// RateLimit implements rate limiting middleware
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if rl.counter != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			current, err := rl.counter.Hit(ctx, clientIP, rl.window)
			cancel()

			if err == nil {
				remaining := int64(rl.limit) - current
				if remaining < 0 {
					remaining = 0
				}
				c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
				c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

				if current > int64(rl.limit) {
					c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
					abortWithMessage(c, http.StatusTooManyRequests, "Rate limit exceeded")
					return
				}
				c.Next()
				return
			}

			logrus.WithError(err).Debug("rate limit counter unavailable, using local limiter")
		}

		if !rl.localLimiter(clientIP).Allow() {
			abortWithMessage(c, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) localLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if v, ok := rl.visitors[ip]; ok {
		v.lastSeen = now
		return v.limiter
	}

	limiter := rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.limit)), rl.burst)
	rl.visitors[ip] = &visitor{limiter: limiter, lastSeen: now}
	return limiter
}

// Cleanup forgets local limiters idle for longer than maxIdle
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// RunCleanup calls Cleanup every interval until ctx is done
func (rl *RateLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup(10 * time.Minute)
		}
	}
}
