package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Take(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		allowed, _, _ := bucket.take()
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, remaining, resetTime := bucket.take()
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, resetTime.After(time.Now()))
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(1, 20.0)

	allowed, _, _ := bucket.take()
	require.True(t, allowed)
	allowed, _, _ = bucket.take()
	require.False(t, allowed)

	time.Sleep(100 * time.Millisecond)

	allowed, _, _ = bucket.take()
	assert.True(t, allowed, "bucket should refill after waiting")
}

func TestLimiter_GenerationRules(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Rules:         GenerationRules(Rule{Limit: 5, Window: time.Hour, Burst: 5}),
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/qwen", "POST")
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 5, info.Limit)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/qwen", "POST")
	assert.False(t, allowed)
	assert.Positive(t, info.RetryAfter)

	// buckets are per endpoint
	allowed, info = limiter.Allow("127.0.0.1", "/api/recommend", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 5, info.Limit)

	// and per client
	allowed, _ = limiter.Allow("10.0.0.2", "/api/qwen", "POST")
	assert.True(t, allowed)

	allowed, info = limiter.Allow("127.0.0.1", "/other", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_AllowAndDenyLists(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Allowlist:     map[string]bool{"10.0.0.1": true},
		Denylist:      map[string]bool{"10.0.0.9": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/api/qwen", "POST")
		assert.True(t, allowed)
	}

	allowed, _ := limiter.Allow("10.0.0.9", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/qwen", "POST")
		assert.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_UnlimitedEndpoints(t *testing.T) {
	config := &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET")
		assert.True(t, allowed)
		allowed, _ = limiter.Allow("127.0.0.1", "/metrics", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	config := &Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	var wg sync.WaitGroup
	var allowedCount atomic.Int64

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowedCount.Load())
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 4; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}

	limiter.evictIdle(time.Now().Add(-time.Hour))
	assert.Len(t, limiter.buckets, 4, "recent buckets survive")

	limiter.evictIdle(time.Now().Add(time.Second))
	assert.Empty(t, limiter.buckets)
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(nil)
	assert.NotPanics(t, func() {
		limiter.Stop()
		limiter.Stop()
	})
}

func TestMatchRule(t *testing.T) {
	rules := []Rule{
		{Path: "/api/qwen", Method: "POST", Limit: 5},
		{Path: "/api/", Method: "POST", Limit: 50},
	}

	assert.Equal(t, 5, MatchRule("/api/qwen", "POST", rules).Limit)
	assert.Equal(t, 50, MatchRule("/api/other", "POST", rules).Limit)
	assert.Nil(t, MatchRule("/api/qwen", "GET", rules))
	assert.Equal(t, 0, MatchRule("/health", "GET", rules).Limit)
}

func TestLoadConfig(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("rate_limit_generate_limit", 7)
	v.Set("rate_limit_allowlist", "10.0.0.1, 10.0.0.2,")

	cfg := LoadConfig(v)
	require.True(t, cfg.Enabled)
	assert.Equal(t, 600, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Allowlist)
	require.Len(t, cfg.Rules, 2)
	assert.Equal(t, "/api/qwen", cfg.Rules[0].Path)
	assert.Equal(t, 7, cfg.Rules[0].Limit)
	assert.Equal(t, time.Hour, cfg.Rules[1].Window)

	v.Set("rate_limit_enabled", false)
	assert.False(t, LoadConfig(v).Enabled)
}
