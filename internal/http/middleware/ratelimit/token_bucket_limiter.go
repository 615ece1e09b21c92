package ratelimit

import (
	"sync"
	"time"
)

// Config stores TokenBucketLimiter settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // capacity (max tokens)
	TTL        time.Duration // delete idle buckets (0 disables)
	MaxBuckets int           // maximum number of buckets
}

// TokenBucketLimiter keeps a token bucket per key. Keys are opaque:
// the HTTP middleware feeds client IPs, the webhook feeds chat ids.
// When MaxBuckets is reached, unseen keys are denied until the sweep
// frees a slot.
type TokenBucketLimiter struct {
	cfg   Config
	clock Clock

	mu      sync.RWMutex
	buckets map[string]*bucket
	swept   time.Time
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	refilled time.Time // last refill calculation
	touched  time.Time // last Allow call, drives TTL
}

// NewTokenBucketLimiter creates a limiter with explicit config and an
// injected clock.
func NewTokenBucketLimiter(clock Clock, cfg Config) *TokenBucketLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucketLimiter{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// NewTokenBucketPerWindow is a convenience ctor for "limit per window".
func NewTokenBucketPerWindow(clock Clock, limit int, window time.Duration, ttl time.Duration, maxBuckets int) *TokenBucketLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return NewTokenBucketLimiter(clock, Config{
		Rate:       float64(limit) / window.Seconds(),
		Burst:      limit,
		TTL:        ttl,
		MaxBuckets: maxBuckets,
	})
}

// Allow reports whether key may proceed, consuming a token if so.
func (l *TokenBucketLimiter) Allow(key string) bool {
	now := l.clock.Now()
	l.sweep(now)

	b := l.lookup(key, now)
	if b == nil {
		return false
	}
	return b.take(now, l.cfg.Rate, float64(l.cfg.Burst))
}

// lookup finds the bucket for key, creating it when the table has room.
// Nil means the table is full and the key must be denied.
func (l *TokenBucketLimiter) lookup(key string, now time.Time) *bucket {
	l.mu.RLock()
	b := l.buckets[key]
	l.mu.RUnlock()
	if b != nil {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// повторная проверка: кто-то мог создать bucket, пока мы ждали lock
	if b = l.buckets[key]; b != nil {
		return b
	}
	if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
		return nil
	}

	b = &bucket{
		tokens:   float64(l.cfg.Burst),
		refilled: now,
		touched:  now,
	}
	l.buckets[key] = b
	return b
}

func (b *bucket) take(now time.Time, rate, burst float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now, rate, burst)
	b.touched = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (b *bucket) refill(now time.Time, rate, burst float64) {
	dt := now.Sub(b.refilled)
	if dt <= 0 {
		return
	}
	b.tokens = min(b.tokens+dt.Seconds()*rate, burst)
	b.refilled = now
}

// sweep drops buckets idle longer than TTL. Runs at most once per
// max(TTL/2, 1m) so Allow stays cheap under load.
func (l *TokenBucketLimiter) sweep(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}

	every := time.Minute
	if half := l.cfg.TTL / 2; half > every {
		every = half
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.swept.IsZero() && now.Sub(l.swept) < every {
		return
	}
	l.swept = now

	for key, b := range l.buckets {
		b.mu.Lock()
		idle := now.Sub(b.touched)
		b.mu.Unlock()

		if idle > l.cfg.TTL {
			delete(l.buckets, key)
		}
	}
}
