package api

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryPolicy retries transient failures of idempotent requests with
// exponential backoff and jitter.
type retryPolicy struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := range c.retry.MaxAttempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}
		if attempt == c.retry.MaxAttempts-1 {
			break
		}

		wait := c.retry.backoff(attempt, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// 404 and 401 are definitive answers, not transient conditions.
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) {
		return false
	}

	// Rate limits are retryable after the advertised wait.
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}

	// Other HTTP errors: retry server-side failures only.
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}

	// Network errors are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (p retryPolicy) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(p.InitialWait) * math.Pow(p.Multiplier, float64(attempt))
	if wait > float64(p.MaxWait) {
		wait = float64(p.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
