// Package retry provides the bounded-retry executor shared by every
// storage-touching operation in the service.
package retry

import (
	"context"
	"time"
)

// Policy controls how many times an operation is attempted and how long
// the executor waits between attempts.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy matches the production handlers: three attempts with a
// 500ms base delay.
var DefaultPolicy = Policy{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
}

// Do runs op until it succeeds, the classifier reports the error as
// non-retryable, or the attempt budget is exhausted. Backoff is linear:
// BaseDelay * attempt number. The backoff sleep aborts when ctx is done,
// returning the last error observed.
func Do[T any](ctx context.Context, policy Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !Retryable(err) || attempt == attempts {
			return zero, err
		}

		timer := time.NewTimer(policy.BaseDelay * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}
	return zero, lastErr
}
