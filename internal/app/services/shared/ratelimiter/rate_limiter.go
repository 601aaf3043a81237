package ratelimiter

import (
	"context"
	"fmt"
	"koos-service/internal/app/contracts"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ResourceLimiter is a fixed window counter stored in Redis with a TTL equal
// to the window duration. It is shared by every replica of the service.
type ResourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) contracts.ResourceLimiter {
	return &ResourceLimiter{redis: redis, log: log}
}

// ApplyResourceLimiter enforces a fixed-window limit keyed by group + resource.
// When the quota is exceeded it returns Allowed=false with the seconds left
// until the next window boundary.
func (l *ResourceLimiter) ApplyResourceLimiter(ctx context.Context, in *contracts.ApplyResourceLimiterInput) (*contracts.ApplyResourceLimiterOutput, error) {
	if in == nil {
		return &contracts.ApplyResourceLimiterOutput{Allowed: false}, fmt.Errorf("nil input")
	}

	w, ok := normalize(in)
	if ok {
		return &contracts.ApplyResourceLimiterOutput{Allowed: true}, nil
	}
	if w.invalid {
		return &contracts.ApplyResourceLimiterOutput{Allowed: false, RetryAfterSecs: w.windowSec}, nil
	}

	ttl := time.Duration(w.windowSec)*time.Second + time.Second
	newCount, err := l.redis.IncrementWithTTL(ctx, w.key, ttl)
	if err != nil {
		l.log.Error("ResourceLimiter.ApplyResourceLimiter increment failed",
			zap.String("key", w.key),
			zap.Error(err))
		return &contracts.ApplyResourceLimiterOutput{Allowed: false}, err
	}

	if newCount > in.MaxQuota {
		return &contracts.ApplyResourceLimiterOutput{Allowed: false, RetryAfterSecs: w.retryAfter}, nil
	}
	return &contracts.ApplyResourceLimiterOutput{Allowed: true}, nil
}

type window struct {
	// bucket is GROUP:resource, key adds the window id
	bucket     string
	key        string
	windowSec  int
	retryAfter int
	invalid    bool
}

// normalize resolves the window for in. The boolean reports that no limit
// applies at all.
func normalize(in *contracts.ApplyResourceLimiterInput) (window, bool) {
	resource := strings.ToLower(strings.TrimSpace(in.ResourceName))
	group := strings.ToUpper(strings.TrimSpace(in.LimiterGroupName))

	windowSec := in.WindowDurationSec
	if windowSec <= 0 {
		windowSec = 60
	}
	if in.MaxQuota <= 0 {
		return window{}, true
	}
	if resource == "" || group == "" {
		return window{windowSec: windowSec, invalid: true}, false
	}

	now := in.NowUTC
	if now.IsZero() {
		now = time.Now().UTC()
	}

	bucket := group + ":" + resource
	windowID := now.Unix() / int64(windowSec)
	nextWindowStart := (windowID + 1) * int64(windowSec)
	return window{
		bucket:     bucket,
		key:        fmt.Sprintf("%s:%d", bucket, windowID),
		windowSec:  windowSec,
		retryAfter: int(nextWindowStart-now.Unix()) + 1,
	}, false
}
