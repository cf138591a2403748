// Package ratelimiter is a per-identity token bucket limiter.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// UserRateLimiter keeps one bucket per identity. Buckets idle for longer
// than ttl are dropped by a background sweep.
type UserRateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64
	ttl      time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func New(rate float64, capacity float64, ttl time.Duration) *UserRateLimiter {
	url := newWithClock(rate, capacity, ttl, time.Now)
	go url.sweepLoop()
	return url
}

func newWithClock(rate, capacity float64, ttl time.Duration, now func() time.Time) *UserRateLimiter {
	return &UserRateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		ttl:      ttl,
		now:      now,
		stop:     make(chan struct{}),
	}
}

// Allow takes one token from identity's bucket.
func (url *UserRateLimiter) Allow(identity string) bool {
	url.mu.Lock()
	defer url.mu.Unlock()

	now := url.now()
	b, ok := url.buckets[identity]
	if !ok {
		b = &bucket{tokens: url.capacity, lastSeen: now}
		url.buckets[identity] = b
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * url.rate
	if b.tokens > url.capacity {
		b.tokens = url.capacity
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (url *UserRateLimiter) sweep() {
	url.mu.Lock()
	defer url.mu.Unlock()

	now := url.now()
	for id, b := range url.buckets {
		if now.Sub(b.lastSeen) > url.ttl {
			delete(url.buckets, id)
		}
	}
}

func (url *UserRateLimiter) sweepLoop() {
	interval := url.ttl / 2
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			url.sweep()
		case <-url.stop:
			return
		}
	}
}

func (url *UserRateLimiter) Stop() {
	url.stopOnce.Do(func() { close(url.stop) })
}

func (url *UserRateLimiter) size() int {
	url.mu.Lock()
	defer url.mu.Unlock()
	return len(url.buckets)
}
