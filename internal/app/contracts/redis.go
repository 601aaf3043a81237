package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	// IncrementWithTTL increments key, starting the expiry on first use, and
	// returns the new count.
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error)
}
