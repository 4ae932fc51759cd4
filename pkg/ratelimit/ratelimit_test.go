package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNilLimiterNeverBlocks(t *testing.T) {
	var l *Limiter
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	for range 100 {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() = %v, want nil", err)
		}
	}
}

func TestPerMinuteDisabled(t *testing.T) {
	if l := PerMinute(0); l != nil {
		t.Fatalf("PerMinute(0) = %v, want nil", l)
	}
	if l := PerMinute(-5); l != nil {
		t.Fatalf("PerMinute(-5) = %v, want nil", l)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := PerMinute(1)
	ctx, cancel := context.WithCancel(context.Background())

	// First token is available immediately.
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("first Wait() = %v, want nil", err)
	}

	cancel()
	if err := l.Wait(ctx); err == nil {
		t.Fatal("second Wait() with canceled context = nil, want error")
	}
}
