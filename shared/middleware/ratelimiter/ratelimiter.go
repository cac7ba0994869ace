package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket for one client key.
type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
	expiry     *time.Timer
}

// ClientRateLimiter keeps one token bucket per client key. Idle buckets are
// dropped after expirationTime so the map does not grow with every IP ever seen.
type ClientRateLimiter struct {
	mu             sync.RWMutex
	buckets        map[string]*bucket
	rate           float64
	capacity       float64
	expirationTime time.Duration
}

func New(rate, capacity float64, expirationTime time.Duration) *ClientRateLimiter {
	return &ClientRateLimiter{
		buckets:        make(map[string]*bucket),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
	}
}

func (l *ClientRateLimiter) getBucket(key string) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		l.resetExpiry(key, b)
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok = l.buckets[key]; ok {
		l.resetExpiry(key, b)
		return b
	}
	b = &bucket{tokens: l.capacity, lastRefill: time.Now()}
	l.buckets[key] = b
	l.resetExpiry(key, b)
	return b
}

func (l *ClientRateLimiter) resetExpiry(key string, b *bucket) {
	if b.expiry != nil {
		b.expiry.Stop()
	}
	b.expiry = time.AfterFunc(l.expirationTime, func() {
		l.mu.Lock()
		delete(l.buckets, key)
		l.mu.Unlock()
	})
}

// Allow reports whether one more request from the given client fits the budget.
func (l *ClientRateLimiter) Allow(key string) bool {
	b := l.getBucket(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Stop cancels all pending expiry timers.
func (l *ClientRateLimiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.buckets {
		if b.expiry != nil {
			b.expiry.Stop()
		}
	}
}

// Rps100 allows a sustained 100 requests per second with a small burst.
func Rps100() *ClientRateLimiter {
	return New(100, 120, time.Hour)
}

// Rps10 allows a sustained 10 requests per second.
func Rps10() *ClientRateLimiter {
	return New(10, 15, time.Hour)
}
