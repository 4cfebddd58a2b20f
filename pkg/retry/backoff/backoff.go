// Package backoff provides delay schedules for retries.
package backoff

import (
	"math"
	"math/rand"
	"time"
)

// Strategy returns the delay before the next attempt. attempts starts at 1.
type Strategy func(attempts uint) time.Duration

// Constant always waits interval.
func Constant(interval time.Duration) Strategy {
	return func(uint) time.Duration {
		return interval
	}
}

// Exponential waits baseDelay * base^(attempts-1).
//
// Ex. Exponential(2*time.Second, 3) = 2s, 6s, 18s, 54s, ...
func Exponential(baseDelay time.Duration, base float64) Strategy {
	return func(attempts uint) time.Duration {
		return saturate(float64(baseDelay) * math.Pow(base, float64(attempts-1)))
	}
}

// BinaryExponential is Exponential with a base of 2.
//
// Ex. BinaryExponential(time.Second) = 1s, 2s, 4s, 8s, ...
func BinaryExponential(baseDelay time.Duration) Strategy {
	return Exponential(baseDelay, 2)
}

// Jitter spreads d uniformly within d +/- d*fraction.
func Jitter(d time.Duration, fraction float64) time.Duration {
	return saturate(float64(d) * (1 + fraction*(2*rand.Float64()-1)))
}

func saturate(d float64) time.Duration {
	if d >= math.MaxInt64 || math.IsNaN(d) {
		return math.MaxInt64
	}
	if d < 0 {
		return 0
	}
	return time.Duration(d)
}
