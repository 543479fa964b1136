package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a backend (redis, mongo) that could not be reached.
var ErrNetwork = errors.New("network error")

// MaxRetryDelay caps the wait between two attempts of [Retry].
const MaxRetryDelay = 8 * time.Second

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err so [Retry] tries again. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff is [Retry] with three attempts starting at one second.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

// Retry calls fn until it succeeds, returns an error not marked [Retryable],
// or has run attempts times. The delay doubles after each failure up to
// [MaxRetryDelay]. It returns ctx.Err() if ctx ends while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(2*delay, MaxRetryDelay)
	}
	return err
}
