// Package rate throttles operations that share a key.
package rate

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Limiter limits operations based on a provided key.
type Limiter interface {
	// Allow reports whether an operation for key may happen now.
	Allow(key string) bool

	// Wait blocks until an operation for key may happen or ctx is done.
	Wait(ctx context.Context, key string) error
}

type localRateLimiter struct {
	limit rate.Limit
	burst int

	sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLocalRateLimiter returns an in memory limiter allowing perSecond
// operations per key, with bursts of up to perSecond operations.
func NewLocalRateLimiter(perSecond float64) Limiter {
	return &localRateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    max(1, int(perSecond)),
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *localRateLimiter) get(key string) *rate.Limiter {
	l.Lock()
	defer l.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}

// Allow implements Limiter.Allow.
func (l *localRateLimiter) Allow(key string) bool {
	return l.get(key).Allow()
}

// Wait implements Limiter.Wait.
func (l *localRateLimiter) Wait(ctx context.Context, key string) error {
	if err := l.get(key).Wait(ctx); err != nil {
		return errors.Wrapf(err, "rate limit wait for %s", key)
	}
	return nil
}

// NoLimiter never limits operations
type NoLimiter struct{}

// Allow implements Limiter.Allow.
func (NoLimiter) Allow(string) bool {
	return true
}

// Wait implements Limiter.Wait.
func (NoLimiter) Wait(ctx context.Context, _ string) error {
	return ctx.Err()
}
