package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeCounter struct {
	counts  map[string]int64
	expires map[string]time.Duration
	incrErr error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: make(map[string]int64), expires: make(map[string]time.Duration)}
}

func (f *fakeCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestWindowLimiterRejectsOverLimit(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewWindowLimiter(counter, "commentary", 2, time.Minute)
	fixed := time.Date(2024, 1, 1, 12, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(context.Background(), "10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("call %d should pass, got ok=%v err=%v", i, ok, err)
		}
	}
	ok, err := limiter.Allow(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("third call in window should be rejected")
	}

	if ok, _ := limiter.Allow(context.Background(), "10.0.0.2"); !ok {
		t.Fatal("other keys should have their own budget")
	}
	if len(counter.expires) != 2 {
		t.Fatalf("expected expiry set once per key, got %v", counter.expires)
	}
}

func TestWindowLimiterNewWindowResets(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewWindowLimiter(counter, "commentary", 1, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if ok, _ := limiter.Allow(context.Background(), "k"); !ok {
		t.Fatal("first call should pass")
	}
	if ok, _ := limiter.Allow(context.Background(), "k"); ok {
		t.Fatal("second call should be rejected")
	}
	now = now.Add(time.Minute)
	if ok, _ := limiter.Allow(context.Background(), "k"); !ok {
		t.Fatal("call in next window should pass")
	}
}

func TestWindowLimiterFailsOpen(t *testing.T) {
	counter := newFakeCounter()
	counter.incrErr = errors.New("redis down")
	limiter := NewWindowLimiter(counter, "commentary", 1, time.Minute)

	ok, err := limiter.Allow(context.Background(), "k")
	if !ok {
		t.Fatal("limiter should fail open")
	}
	if err == nil {
		t.Fatal("expected error to be surfaced")
	}
}
