package ratelimiter

import (
	"context"
	"fmt"
	"koos-service/internal/app/contracts"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LocalLimiter is the in-process fallback used when Redis is disabled. Each
// group and resource gets a token bucket refilled at MaxQuota per window, so
// limits are enforced per replica only. A bucket idle for a full window is
// full again, so it is dropped and recreated on demand.
type LocalLimiter struct {
	log       *zap.Logger
	mu        sync.Mutex
	limiters  map[string]*localBucket
	nextSweep time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	window   time.Duration
	lastSeen time.Time
}

func NewLocalLimiter(log *zap.Logger) contracts.ResourceLimiter {
	return &LocalLimiter{
		log:      log,
		limiters: make(map[string]*localBucket),
	}
}

func (l *LocalLimiter) ApplyResourceLimiter(ctx context.Context, in *contracts.ApplyResourceLimiterInput) (*contracts.ApplyResourceLimiterOutput, error) {
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

	now := in.NowUTC
	if now.IsZero() {
		now = time.Now().UTC()
	}

	limiter := l.limiterFor(w.bucket, in.MaxQuota, w.windowSec, now)
	reservation := limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return &contracts.ApplyResourceLimiterOutput{Allowed: true}, nil
	}
	reservation.CancelAt(now)

	l.log.Debug("LocalLimiter.ApplyResourceLimiter quota exhausted",
		zap.String("key", w.bucket),
		zap.Duration("delay", delay))
	return &contracts.ApplyResourceLimiterOutput{
		Allowed:        false,
		RetryAfterSecs: int(math.Ceil(delay.Seconds())),
	}, nil
}

func (l *LocalLimiter) limiterFor(key string, maxQuota, windowSec int, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	window := time.Duration(windowSec) * time.Second
	l.sweep(now, window)

	bucket, ok := l.limiters[key]
	if !ok {
		bucket = &localBucket{
			limiter: rate.NewLimiter(rate.Every(window/time.Duration(maxQuota)), maxQuota),
			window:  window,
		}
		l.limiters[key] = bucket
	}
	if now.After(bucket.lastSeen) {
		bucket.lastSeen = now
	}
	return bucket.limiter
}

// sweep runs at most once per window and must be called with mu held.
func (l *LocalLimiter) sweep(now time.Time, window time.Duration) {
	if now.Before(l.nextSweep) {
		return
	}
	l.nextSweep = now.Add(window)

	for key, bucket := range l.limiters {
		if now.Sub(bucket.lastSeen) >= bucket.window {
			delete(l.limiters, key)
		}
	}
}
