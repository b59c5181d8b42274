package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errNetwork = errors.New("network error")

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, errNetwork) {
		t.Error("errors.Is should see through RetryableError")
	}
	if IsRetryable(errNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		attempts  int
		failFirst int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"SuccessFirstTry", 3, 0, nil, 1, nil},
		{"RetryThenSucceed", 3, 2, Retryable(errNetwork), 3, nil},
		{"Exhausted", 2, 5, Retryable(errNetwork), 2, errNetwork},
		{"PermanentStopsImmediately", 3, 5, permanent, 1, permanent},
		{"ZeroAttemptsRunsOnce", 0, 0, nil, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failFirst {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("Retry() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Retry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return Retryable(errNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}
