package podcast

import (
	"context"
	"errors"
	"time"
)

// StatusRetries is the number of additional status attempts made after a
// transport failure.
const StatusRetries = 2

// StatusRetryDelay returns the wait before retry number attempt (0-based):
// 2^attempt seconds, so 1s then 2s.
func StatusRetryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return time.Duration(1<<attempt) * time.Second
}

// retryableStatusError reports whether a failed status call should be retried.
// Only transport failures qualify; HTTP error statuses and decode failures
// propagate immediately, as does cancellation of the caller's context.
func retryableStatusError(parent context.Context, err error) bool {
	if err == nil || parent.Err() != nil {
		return false
	}
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
