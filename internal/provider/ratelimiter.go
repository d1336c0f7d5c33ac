package provider

import (
	"context"
	"sync"
	"time"
)

// TokenBucket spaces out calls to a rate-limited upstream API. It starts full
// and regains one token every refillEvery.
type TokenBucket struct {
	mu          sync.Mutex
	tokens      int
	capacity    int
	refillEvery time.Duration
	lastRefill  time.Time
}

func NewTokenBucket(capacity int, refillEvery time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:      capacity,
		capacity:    capacity,
		refillEvery: refillEvery,
		lastRefill:  time.Now(),
	}
}

// Take blocks until a token is available or ctx is done.
func (b *TokenBucket) Take(ctx context.Context) error {
	for {
		wait, ok := b.tryTake()
		if ok {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// tryTake consumes a token if one is available, otherwise reports how long
// until the next refill.
func (b *TokenBucket) tryTake() (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if earned := int(now.Sub(b.lastRefill) / b.refillEvery); earned > 0 {
		b.tokens = min(b.capacity, b.tokens+earned)
		b.lastRefill = b.lastRefill.Add(time.Duration(earned) * b.refillEvery)
	}
	if b.tokens > 0 {
		b.tokens--
		return 0, true
	}
	return b.refillEvery - now.Sub(b.lastRefill), false
}
