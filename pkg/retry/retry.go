// Package retry runs actions until they succeed, a strategy gives up, or the
// context is done.
package retry

import (
	"context"

	"github.com/pkg/errors"
)

// Action is a function to be performed in a retriable manner.
type Action func() error

// Retrier retries the provided action.
type Retrier interface {
	Retry(ctx context.Context, action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier that applies strategies to every action. With
// no strategies the action is retried in a tight loop until it succeeds or
// ctx is done.
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{
		strategies: strategies,
	}
}

func (r *retrier) Retry(ctx context.Context, action Action) (uint, error) {
	return Retry(ctx, action, r.strategies...)
}

// Retry executes action until it succeeds, one of the strategies declines
// another attempt, or ctx is done. It returns the number of attempts made.
//
// Strategies run in order after every failed attempt, so strategies that wait
// should be specified last.
func Retry(ctx context.Context, action Action, strategies ...Strategy) (uint, error) {
	for attempts := uint(1); ; attempts++ {
		err := action()
		if err == nil {
			return attempts, nil
		}

		for _, s := range strategies {
			if !s(ctx, attempts, err) {
				return attempts, giveUp(ctx, attempts, err)
			}
		}

		if ctx.Err() != nil {
			return attempts, giveUp(ctx, attempts, err)
		}
	}
}

func giveUp(ctx context.Context, attempts uint, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Wrapf(ctxErr, "gave up after %d attempts (last error: %v)", attempts, err)
	}
	return err
}
