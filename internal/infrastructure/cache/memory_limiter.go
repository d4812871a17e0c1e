package cache

import (
	"context"
	"math"
	"sync"
	"time"
)

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	lastRef  time.Time
	lastSeen time.Time
}

// MemoryLimiter is a per-key token bucket kept in process memory. It is used
// when no Redis address is configured.
type MemoryLimiter struct {
	burst         int
	rate          float64 // tokens per second
	capacity      float64
	idleTTL       time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func NewMemoryLimiter(burst, perMinute int) *MemoryLimiter {
	if burst < 1 {
		burst = 1
	}
	if perMinute < 1 {
		perMinute = 1
	}
	return &MemoryLimiter{
		burst:         burst,
		rate:          float64(perMinute) / 60.0,
		capacity:      float64(burst),
		idleTTL:       15 * time.Minute,
		sweepInterval: time.Minute,
		now:           time.Now,
		buckets:       make(map[string]*bucket, 256),
		lastSweep:     time.Now(),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()
	b := l.getBucket(key, now)

	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.lastRef).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.rate)
		b.lastRef = now
	}
	b.lastSeen = now

	if b.tokens >= 1.0 {
		b.tokens--
		return Decision{Allowed: true, Limit: l.burst, Remaining: int(math.Floor(b.tokens))}, nil
	}

	sec := math.Ceil((1.0 - b.tokens) / l.rate)
	if sec < 1 {
		sec = 1
	}
	return Decision{Limit: l.burst, RetryAfter: time.Duration(sec) * time.Second}, nil
}

func (l *MemoryLimiter) getBucket(key string, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.sweepInterval {
		for k, b := range l.buckets {
			b.mu.Lock()
			idle := now.Sub(b.lastSeen) > l.idleTTL
			b.mu.Unlock()
			if idle {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b := l.buckets[key]
	if b == nil {
		b = &bucket{tokens: l.capacity, lastRef: now, lastSeen: now}
		l.buckets[key] = b
	}
	return b
}
