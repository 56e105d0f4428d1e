// internal/pkg/auth/denylist.go
package auth

import (
	"context"
	"time"
)

// Denylist remembers revoked token ids until they would have expired anyway
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RemainingLifetime is how long the token in claims stays valid
func RemainingLifetime(claims *Claims, now time.Time) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	return claims.ExpiresAt.Sub(now)
}
