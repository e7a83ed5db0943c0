package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_BurstExhaustion(t *testing.T) {
	limiter := NewLimiter(1, 1)
	url := "https://example.org/feed"

	if err := limiter.Wait(context.Background(), url); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	// Burst of 1 is now spent.
	if limiter.Allow(url) {
		t.Error("Allow succeeded with exhausted tokens")
	}
}

func TestLimiter_HostsIndependent(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("https://a.example.org/x") {
		t.Fatal("first request to host a denied")
	}
	if !limiter.Allow("https://b.example.org/x") {
		t.Error("host b shares host a's budget")
	}
	if limiter.Allow("https://a.example.org/y") {
		t.Error("second request to host a allowed with burst 1")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetHostRate("fast.example.org", 1000, 5)

	url := "https://fast.example.org/x"
	for i := 0; i < 5; i++ {
		if !limiter.Allow(url) {
			t.Fatalf("request %d denied despite burst 5", i+1)
		}
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.01, 1) // one token per 100s
	url := "https://slow.example.org/x"

	// Spend the burst token.
	if err := limiter.Wait(context.Background(), url); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := limiter.Wait(ctx, url)
	if err == nil {
		t.Fatal("second wait should fail once the context expires")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("wait did not respect context deadline, took %v", elapsed)
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if limiter.Allow("://not a url") {
		t.Error("Allow on unparsable URL should deny")
	}
	if err := limiter.Wait(context.Background(), "://not a url"); err == nil {
		t.Error("Wait on unparsable URL should fail")
	}
}

func TestLimiter_DefaultBurst(t *testing.T) {
	limiter := NewLimiter(5, 0)

	// Zero burst falls back to a usable default rather than a limiter
	// that never admits anything.
	if !limiter.Allow("https://example.org/") {
		t.Error("limiter with defaulted burst denied the first request")
	}
}
