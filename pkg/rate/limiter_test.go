package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoLimiter(t *testing.T) {
	var l NoLimiter
	for i := 0; i < 10000; i++ {
		assert.True(t, l.Allow(""))
		assert.NoError(t, l.Wait(context.Background(), ""))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, l.Wait(ctx, ""))
}

func TestLocalRateLimiter_Allow(t *testing.T) {
	l := NewLocalRateLimiter(2)

	for i := 0; i < 2; i++ {
		assert.True(t, l.Allow("a"))
	}
	assert.False(t, l.Allow("a"))

	// Keys are limited independently.
	for i := 0; i < 2; i++ {
		assert.True(t, l.Allow("b"))
	}
	assert.False(t, l.Allow("b"))
}

func TestLocalRateLimiter_Wait(t *testing.T) {
	l := NewLocalRateLimiter(1)

	require.NoError(t, l.Wait(context.Background(), "a"))

	// The next token is a second away, past the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "a"))

	require.NoError(t, l.Wait(context.Background(), "b"))
}

func TestLocalRateLimiter_FractionalRate(t *testing.T) {
	l := NewLocalRateLimiter(0.5)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}
