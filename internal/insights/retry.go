package insights

import (
	"context"
	"time"
)

// retryWithBackoff runs fn up to attempts times, doubling the delay after
// each failure that shouldRetry reports as transient. Any other failure
// propagates immediately.
func retryWithBackoff[T any](ctx context.Context, attempts int, baseDelay time.Duration, shouldRetry func(error) bool, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	delay := baseDelay
	for attempt := 0; attempt < attempts; attempt++ {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !shouldRetry(err) || attempt == attempts-1 {
			return zero, err
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		delay *= 2
	}

	return zero, lastErr
}
