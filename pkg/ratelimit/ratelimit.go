package ratelimit

import (
	"context"
	"sync"
	"time"
)

// RateLimiter gates requests to one endpoint class.
type RateLimiter interface {
	Wait(ctx context.Context) error
	Allow() bool
}

// TokenBucket refills at a fixed per-second rate up to capacity.
type TokenBucket struct {
	capacity   int
	tokens     int
	refillRate int // tokens per second
	windowSize time.Duration
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a full bucket.
func NewTokenBucket(capacity, refillRate int, windowSize time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		windowSize: windowSize,
		lastRefill: time.Now(),
	}
}

func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)

	add := int(elapsed.Seconds()) * tb.refillRate
	if add > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+add)
		tb.lastRefill = now
	}
}

// Allow consumes one token if available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available or ctx is done.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		if tb.Allow() {
			return nil
		}

		wait := tb.windowSize
		if tb.refillRate > 0 {
			wait = time.Second / time.Duration(tb.refillRate)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// SlidingWindow allows at most limit requests per windowSize.
type SlidingWindow struct {
	limit      int
	windowSize time.Duration
	requests   []time.Time
	mu         sync.Mutex
}

// NewSlidingWindow creates an empty window.
func NewSlidingWindow(limit int, windowSize time.Duration) *SlidingWindow {
	return &SlidingWindow{
		limit:      limit,
		windowSize: windowSize,
		requests:   make([]time.Time, 0),
	}
}

// Allow records the request if the window has room.
func (sw *SlidingWindow) Allow() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-sw.windowSize)

	valid := sw.requests[:0]
	for _, req := range sw.requests {
		if req.After(cutoff) {
			valid = append(valid, req)
		}
	}
	sw.requests = valid

	if len(sw.requests) >= sw.limit {
		return false
	}
	sw.requests = append(sw.requests, now)
	return true
}

// Wait blocks until the window has room or ctx is done.
func (sw *SlidingWindow) Wait(ctx context.Context) error {
	for {
		if sw.Allow() {
			return nil
		}

		sw.mu.Lock()
		wait := 100 * time.Millisecond
		if len(sw.requests) > 0 {
			if w := sw.windowSize - time.Since(sw.requests[0]); w > wait {
				wait = w
			}
		}
		sw.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Manager holds per-endpoint limiters keyed by a logical endpoint name.
type Manager struct {
	limiters map[string]RateLimiter
	fallback RateLimiter
	mu       sync.RWMutex
}

// NewManager creates a manager preloaded with the CLOB API's published limits.
func NewManager() *Manager {
	m := &Manager{
		limiters: make(map[string]RateLimiter),
		fallback: NewSlidingWindow(5000, 10*time.Second),
	}

	m.limiters["clob:order:post"] = NewTokenBucket(2400, 240, 10*time.Second)
	m.limiters["clob:order:delete"] = NewTokenBucket(2400, 240, 10*time.Second)
	m.limiters["clob:order:get"] = NewSlidingWindow(150, 10*time.Second)
	m.limiters["clob:trades:get"] = NewSlidingWindow(150, 10*time.Second)
	m.limiters["clob:balance:get"] = NewSlidingWindow(200, 10*time.Second)
	m.limiters["clob:market:get"] = NewSlidingWindow(200, 10*time.Second)

	return m
}

// Wait blocks against the named endpoint's limiter.
func (m *Manager) Wait(ctx context.Context, endpoint string) error {
	m.mu.RLock()
	limiter, ok := m.limiters[endpoint]
	m.mu.RUnlock()
	if !ok {
		limiter = m.fallback
	}
	return limiter.Wait(ctx)
}
