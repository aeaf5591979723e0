package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryConfig holds configuration for retry behavior
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterEnabled bool
	// Retryable decides whether an error is worth another attempt; nil retries everything
	Retryable func(error) bool
}

// DefaultRetryConfig suits a startup connectivity check
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// Retry runs fn until it succeeds, the attempts run out, the error is not
// retryable or ctx is done. The last error from fn is returned.
func Retry(ctx context.Context, config RetryConfig, fn func(ctx context.Context) error) error {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if config.Retryable != nil && !config.Retryable(lastErr) {
			return lastErr
		}
		if attempt == config.MaxAttempts-1 {
			break
		}

		timer := time.NewTimer(backoff(config, attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
	return lastErr
}

// backoff is InitialDelay * BackoffFactor^attempt capped at MaxDelay, plus up to 10% jitter
func backoff(config RetryConfig, attempt int) time.Duration {
	factor := config.BackoffFactor
	if factor < 1 {
		factor = 1
	}
	delay := time.Duration(float64(config.InitialDelay) * math.Pow(factor, float64(attempt)))
	if config.MaxDelay > 0 && delay > config.MaxDelay {
		delay = config.MaxDelay
	}
	if config.JitterEnabled && delay >= 10 {
		delay += time.Duration(rand.Int63n(int64(delay / 10)))
	}
	return delay
}
