package ratelimiter

import (
	"testing"
	"time"
)

func TestNewRateLimiter(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter("stooq", 30, time.Minute)

	if rl == nil {
		t.Fatal("expected non-nil rate limiter")
	}
	if rl.limit != 30 {
		t.Errorf("expected limit 30, got %d", rl.limit)
	}
	if rl.interval != time.Minute {
		t.Errorf("expected interval 1m, got %v", rl.interval)
	}
}

func TestRateLimiter_UnderLimitDoesNotWait(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter("stooq", 10, time.Minute)

	start := time.Now()
	for i := 0; i < 10; i++ {
		rl.WaitIfNeeded()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("calls under the limit must not sleep, took %v", elapsed)
	}
}

func TestRateLimiter_OverLimitWaits(t *testing.T) {
	t.Parallel()

	interval := 200 * time.Millisecond
	rl := NewRateLimiter("stooq", 2, interval)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	start := time.Now()
	rl.WaitIfNeeded() // third call exceeds the limit
	elapsed := time.Since(start)

	if elapsed < interval/2 {
		t.Errorf("expected the limiter to sleep most of the interval, slept %v", elapsed)
	}
}

func TestRateLimiter_CountResetsAfterInterval(t *testing.T) {
	t.Parallel()

	interval := 50 * time.Millisecond
	rl := NewRateLimiter("stooq", 1, interval)

	rl.WaitIfNeeded()
	time.Sleep(interval + 10*time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Errorf("count must reset after the interval, slept %v", elapsed)
	}
}
