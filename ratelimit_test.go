package finalenglish

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_BurstThenDeny(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 60, BurstSize: 3})

	for i := 0; i < 3; i++ {
		if !r.TryAcquire() {
			t.Fatalf("acquire %d should succeed within the burst", i)
		}
	}
	if r.TryAcquire() {
		t.Error("acquire past the burst should fail immediately")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	// 600 rpm = 10 tokens/sec, so a short sleep refills at least one.
	r := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 600, BurstSize: 1})

	if !r.TryAcquire() {
		t.Fatal("first acquire should succeed")
	}
	if r.TryAcquire() {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(150 * time.Millisecond)
	if !r.TryAcquire() {
		t.Error("bucket should have refilled")
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{})
	if r.Available() != 60 {
		t.Errorf("Available = %v, want the default burst", r.Available())
	}
}

func TestRateLimiter_WaitCancellation(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 1, BurstSize: 1})
	r.TryAcquire() // drain

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := r.Wait(ctx); err == nil {
		t.Error("Wait on an empty bucket should honor cancellation")
	}
}

func TestRateLimitedFetcher(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.responses["data/translations/ui.json"] = []byte(`{}`)

	rl := NewRateLimitedFetcher(fetcher, RateLimitConfig{RequestsPerMinute: 6000, BurstSize: 2})
	ctx := context.Background()

	if _, err := rl.Fetch(ctx, "data/translations/ui.json"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if _, err := rl.Fetch(ctx, "data/translations/ui.json"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if n := fetcher.count("data/translations/ui.json"); n != 2 {
		t.Errorf("underlying fetcher called %d times, want 2", n)
	}
	if rl.Limiter().Available() >= 2 {
		t.Error("tokens should have been consumed")
	}
}
