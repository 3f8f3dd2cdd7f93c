// Package ratelimiter implements a per-identity token bucket.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

// UserRateLimiter keeps one token bucket per identity (user id, IP, or
// the literal "global"). Idle buckets are swept after expiration.
type UserRateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64
	expiry   time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func New(rate, capacity float64, expiry time.Duration) *UserRateLimiter {
	rl := &UserRateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		expiry:   expiry,
		stop:     make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

// Allow reports whether a request for the given identity may proceed.
func (rl *UserRateLimiter) Allow(identity string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[identity]
	if !ok {
		b = &bucket{tokens: rl.capacity, lastRefill: now}
		rl.buckets[identity] = b
	}
	b.lastSeen = now

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * rl.rate
	if b.tokens > rl.capacity {
		b.tokens = rl.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Stop terminates the sweep goroutine.
func (rl *UserRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *UserRateLimiter) janitor() {
	interval := rl.expiry
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for id, b := range rl.buckets {
				if now.Sub(b.lastSeen) > rl.expiry {
					delete(rl.buckets, id)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Common presets used by the router.

func Rps10() *UserRateLimiter { return New(10, 10, time.Hour) }

func Rps100() *UserRateLimiter { return New(100, 100, time.Hour) }

func Rps1000() *UserRateLimiter { return New(1000, 1000, time.Hour) }

func OnceInSecond() *UserRateLimiter { return New(1, 1, time.Hour) }

func OnceInMinute() *UserRateLimiter { return New(1.0/60, 1, time.Hour) }
