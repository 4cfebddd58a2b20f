package retry

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/nezha-game/staking-client/pkg/retry/backoff"
)

// Strategy decides whether an action that failed after the given number of
// attempts is tried again. Strategies may wait, in which case they return
// false once ctx is done.
type Strategy func(ctx context.Context, attempts uint, err error) bool

// Limit caps the total number of attempts. maxAttempts should be >= 1, since
// the action is always evaluated once.
func Limit(maxAttempts uint) Strategy {
	return func(_ context.Context, attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableErrors only retries errors matching one of retriableErrors.
func RetriableErrors(retriableErrors ...error) Strategy {
	return func(_ context.Context, _ uint, err error) bool {
		for _, e := range retriableErrors {
			if errors.Is(err, e) {
				return true
			}
		}
		return false
	}
}

// NonRetriableErrors retries every error except those matching one of
// nonRetriableErrors.
func NonRetriableErrors(nonRetriableErrors ...error) Strategy {
	return func(_ context.Context, _ uint, err error) bool {
		for _, e := range nonRetriableErrors {
			if errors.Is(err, e) {
				return false
			}
		}
		return true
	}
}

// Backoff waits for the delay given by strategy, capped at maxBackoff, before
// the next attempt.
func Backoff(strategy backoff.Strategy, maxBackoff time.Duration) Strategy {
	return func(ctx context.Context, attempts uint, _ error) bool {
		return waiter.Wait(ctx, min(strategy(attempts), maxBackoff))
	}
}

// BackoffWithJitter is Backoff with the capped delay randomly spread by
// +/- jitter (a fraction of the delay).
func BackoffWithJitter(strategy backoff.Strategy, maxBackoff time.Duration, jitter float64) Strategy {
	return func(ctx context.Context, attempts uint, _ error) bool {
		return waiter.Wait(ctx, backoff.Jitter(min(strategy(attempts), maxBackoff), jitter))
	}
}

type sleeper interface {
	// Wait blocks for d and reports whether ctx was still live afterwards.
	Wait(ctx context.Context, d time.Duration) bool
}

type timerSleeper struct{}

func (timerSleeper) Wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

var waiter sleeper = timerSleeper{}
