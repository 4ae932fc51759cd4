package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_SuccessImmediate(t *testing.T) {
	result, err := Retry(3, func() (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result != 42 {
		t.Fatalf("expected 42, got %d", result)
	}
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	calls := 0
	result, err := Retry(3, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("flaky")
		}
		return 99, nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result != 99 {
		t.Fatalf("expected 99, got %d", result)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_PersistentFailure(t *testing.T) {
	calls := 0
	_, err := Retry(3, func() (int, error) {
		calls++
		return 0, errors.New("persistent")
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "persistent" {
		t.Fatalf("expected persistent error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_MaxTriesZeroOrNegative(t *testing.T) {
	calls := 0
	_, err := Retry(0, func() (int, error) {
		calls++
		return 0, errors.New("fail")
	})
	if calls != 1 {
		t.Fatalf("expected 1 call for maxTries=0, got %d", calls)
	}
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRetryErrWithContext_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryErrWithContext(ctx, 3, func(context.Context) error {
		calls++
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected 0 calls, got %d", calls)
	}
}

func TestRetryWithContext_StopsOnCancellationError(t *testing.T) {
	calls := 0
	_, err := RetryWithContext(context.Background(), 5, func(context.Context) (int, error) {
		calls++
		return 0, context.DeadlineExceeded
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestRetry2WithContext_Success(t *testing.T) {
	a, b, err := Retry2WithContext(context.Background(), 3, func(context.Context) (string, int, error) {
		return "ok", 7, nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if a != "ok" || b != 7 {
		t.Fatalf("unexpected results: %q %d", a, b)
	}
}

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("Rate limit exceeded"), true},
		{errors.New("request timed out"), true},
		{errors.New("connection refused"), true},
		{errors.New("upstream returned 503"), true},
		{errors.New("model overloaded"), true},
		{errors.New("invalid api key"), false},
		{errors.New("bad request"), false},
	}
	for _, tt := range tests {
		if got := IsTransientError(tt.err); got != tt.want {
			t.Errorf("IsTransientError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestBackoffParams_DelayGrowsAndCaps(t *testing.T) {
	params := BackoffParams{Initial: time.Second, Factor: 2.0, Max: 5 * time.Second}
	if got := params.Delay(0); got != time.Second {
		t.Fatalf("attempt 0: expected 1s, got %v", got)
	}
	if got := params.Delay(1); got != 2*time.Second {
		t.Fatalf("attempt 1: expected 2s, got %v", got)
	}
	if got := params.Delay(10); got != 5*time.Second {
		t.Fatalf("attempt 10: expected cap 5s, got %v", got)
	}
}

func TestBackoffParams_DelayJitterBounds(t *testing.T) {
	params := BackoffParams{Initial: time.Second, Factor: 2.0, Max: time.Minute, Jitter: 0.25}
	for i := 0; i < 100; i++ {
		delay := params.Delay(0)
		if delay < 750*time.Millisecond || delay > 1250*time.Millisecond {
			t.Fatalf("jittered delay out of bounds: %v", delay)
		}
	}
}

func TestRetryTransientWithContext_NonTransientFailsFast(t *testing.T) {
	calls := 0
	backoff := BackoffParams{Initial: time.Millisecond, Factor: 1, Max: time.Millisecond}
	_, err := RetryTransientWithContext(context.Background(), 5, backoff, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("invalid api key")
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call for non-transient error, got %d", calls)
	}
}

func TestRetryTransientWithContext_RetriesTransient(t *testing.T) {
	calls := 0
	backoff := BackoffParams{Initial: time.Millisecond, Factor: 1, Max: time.Millisecond}
	result, err := RetryTransientWithContext(context.Background(), 5, backoff, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection reset")
		}
		return "done", nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result != "done" {
		t.Fatalf("unexpected result: %q", result)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryTransientErrWithContext_Exhaustion(t *testing.T) {
	calls := 0
	backoff := BackoffParams{Initial: time.Millisecond, Factor: 1, Max: time.Millisecond}
	err := RetryTransientErrWithContext(context.Background(), 3, backoff, func(context.Context) error {
		calls++
		return errors.New("502 bad gateway")
	})
	if err == nil {
		t.Fatal("expected error after exhaustion")
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}
