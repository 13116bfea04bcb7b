package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucketAllow(t *testing.T) {
	tb := NewTokenBucket(3, 1, time.Second)

	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("Allow() = false on request %d with capacity 3", i+1)
		}
	}
	if tb.Allow() {
		t.Error("Allow() = true on an empty bucket")
	}
}

func TestTokenBucketWaitHonorsContext(t *testing.T) {
	tb := NewTokenBucket(1, 1, time.Second)
	if !tb.Allow() {
		t.Fatal("initial token missing")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := tb.Wait(ctx); err == nil {
		t.Error("Wait on empty bucket returned nil, want context error")
	}
}

func TestSlidingWindowAllow(t *testing.T) {
	sw := NewSlidingWindow(2, time.Hour)

	if !sw.Allow() || !sw.Allow() {
		t.Fatal("window rejected requests under the limit")
	}
	if sw.Allow() {
		t.Error("window allowed a request over the limit")
	}
}

func TestSlidingWindowExpires(t *testing.T) {
	sw := NewSlidingWindow(1, 20*time.Millisecond)

	if !sw.Allow() {
		t.Fatal("first request rejected")
	}
	if sw.Allow() {
		t.Fatal("second request allowed inside the window")
	}

	time.Sleep(30 * time.Millisecond)
	if !sw.Allow() {
		t.Error("request rejected after the window expired")
	}
}

func TestManagerKnownAndFallback(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	if err := m.Wait(ctx, "clob:order:post"); err != nil {
		t.Errorf("Wait(clob:order:post) = %v", err)
	}
	if err := m.Wait(ctx, "unknown:endpoint"); err != nil {
		t.Errorf("Wait(unknown) = %v, want fallback to succeed", err)
	}
}
