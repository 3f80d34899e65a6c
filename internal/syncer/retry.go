// ABOUTME: Fixed-backoff retry helper for scheduled sync runs.
// ABOUTME: Stops early on context cancellation or non-retryable errors.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2389-research/contentai/internal/github"
	"github.com/2389-research/contentai/internal/models"
)

// ErrMaxAttemptsExceeded wraps the last error after every attempt failed.
var ErrMaxAttemptsExceeded = errors.New("max retry attempts exceeded")

// RetryConfig configures RetryOperation.
type RetryConfig struct {
	// MaxAttempts includes the initial attempt.
	MaxAttempts int
	// Delay is the fixed wait between attempts.
	Delay time.Duration
	// IsRetryable decides whether an error deserves another attempt.
	IsRetryable func(error) bool
}

// DefaultRetryConfig returns three attempts two seconds apart.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		IsRetryable: IsRetryable,
	}
}

// IsRetryable treats 429, 5xx, and transport failures as transient. Validation
// errors, cancellation, and 4xx responses other than 429 are permanent.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return false
	}
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return true
}

// RetryOperation runs fn until it succeeds, fails permanently, or runs out of attempts.
func RetryOperation(ctx context.Context, cfg RetryConfig, fn func() error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.IsRetryable == nil {
		cfg.IsRetryable = IsRetryable
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !cfg.IsRetryable(err) {
			return err
		}

		if attempt < cfg.MaxAttempts && cfg.Delay > 0 {
			timer := time.NewTimer(cfg.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrMaxAttemptsExceeded, cfg.MaxAttempts, lastErr)
}
