// ABOUTME: Tests for the fixed-backoff retry helper and the auto-sync scheduler.
// ABOUTME: Uses zero or tiny delays so the suite stays fast.
package syncer

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/2389-research/contentai/internal/github"
	"github.com/2389-research/contentai/internal/models"
)

func TestRetryOperationSucceedsAfterTransientErrors(t *testing.T) {
	calls := 0
	err := RetryOperation(context.Background(), RetryConfig{MaxAttempts: 3}, func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("err=%v calls=%d", err, calls)
	}
}

func TestRetryOperationGivesUp(t *testing.T) {
	calls := 0
	err := RetryOperation(context.Background(), RetryConfig{MaxAttempts: 2}, func() error {
		calls++
		return &github.APIError{StatusCode: http.StatusBadGateway}
	})
	if !errors.Is(err, ErrMaxAttemptsExceeded) || calls != 2 {
		t.Errorf("err=%v calls=%d", err, calls)
	}
	var apiErr *github.APIError
	if !errors.As(err, &apiErr) {
		t.Error("expected last error to be wrapped")
	}
}

func TestRetryOperationStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := RetryOperation(context.Background(), RetryConfig{MaxAttempts: 5}, func() error {
		calls++
		return &github.APIError{StatusCode: http.StatusUnauthorized}
	})
	if calls != 1 || errors.Is(err, ErrMaxAttemptsExceeded) {
		t.Errorf("err=%v calls=%d", err, calls)
	}
}

func TestRetryOperationHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := RetryOperation(ctx, RetryConfig{MaxAttempts: 5, Delay: time.Hour}, func() error {
		calls++
		cancel()
		return errors.New("timeout")
	})
	if !errors.Is(err, context.Canceled) || calls != 1 {
		t.Errorf("err=%v calls=%d", err, calls)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("dial tcp: i/o timeout"), true},
		{"canceled", context.Canceled, false},
		{"validation", &models.ValidationError{Errors: []string{"x"}}, false},
		{"rate limited", &github.APIError{StatusCode: http.StatusTooManyRequests}, true},
		{"server", &github.APIError{StatusCode: http.StatusServiceUnavailable}, true},
		{"not found", &github.APIError{StatusCode: http.StatusNotFound}, false},
		{"unauthorized", &github.APIError{StatusCode: http.StatusUnauthorized}, false},
		{"unprocessable", &github.APIError{StatusCode: http.StatusUnprocessableEntity}, false},
		{"deadline", context.DeadlineExceeded, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestSchedulerRunOnceRetries(t *testing.T) {
	var calls atomic.Int32
	pusher := PusherFunc(func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("temporary failure")
		}
		return nil
	})
	s, err := NewScheduler("hourly", pusher, RetryConfig{MaxAttempts: 2})
	if err != nil {
		t.Fatalf("NewScheduler error: %v", err)
	}
	if s.Spec() != "@hourly" {
		t.Errorf("unexpected spec %q", s.Spec())
	}
	if err := s.RunOnce(context.Background()); err != nil {
		t.Errorf("RunOnce error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestSchedulerRunFiresAndStops(t *testing.T) {
	fired := make(chan struct{}, 1)
	pusher := PusherFunc(func(ctx context.Context) error {
		select {
		case fired <- struct{}{}:
		default:
		}
		return nil
	})
	s, err := NewScheduler("@every 1s", pusher, RetryConfig{MaxAttempts: 1})
	if err != nil {
		t.Fatalf("NewScheduler error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled push never fired")
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestNewSchedulerRejectsBadFrequency(t *testing.T) {
	if _, err := NewScheduler("sometimes", PusherFunc(func(context.Context) error { return nil }), DefaultRetryConfig()); err == nil {
		t.Error("expected error")
	}
}
