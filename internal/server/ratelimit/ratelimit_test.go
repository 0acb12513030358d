package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		assert.True(t, bucket.allow(), "request %d should be allowed", i+1)
	}
	assert.False(t, bucket.allow(), "11th request should be denied")
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		bucket.allow()
	}

	time.Sleep(1100 * time.Millisecond)

	assert.True(t, bucket.allow(), "should allow one request after refill")
	assert.False(t, bucket.allow(), "refilled token is consumed")
}

func TestTokenBucket_GetStatus(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 5; i++ {
		bucket.allow()
	}

	remaining, resetTime := bucket.getStatus()
	assert.Equal(t, 5, remaining)
	assert.False(t, resetTime.Before(time.Now()), "reset time should not be in the past")
}

func TestLimiter_DefaultLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	clientID := "203.0.113.7"

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow(clientID, "/sections", "GET")
		require.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow(clientID, "/sections", "GET")
	assert.False(t, allowed, "request over the limit should be denied")
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"203.0.113.7": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/generate", "POST")
		require.True(t, allowed, "whitelisted request %d should be allowed", i+1)
		assert.Zero(t, info.Limit, "whitelisted clients are not accounted")
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"198.51.100.4": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("198.51.100.4", "/health", "GET")
	assert.False(t, allowed, "blacklisted client is denied even on unlimited endpoints")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/generate", "POST")
		require.True(t, allowed, "request %d should pass when limiting is disabled", i+1)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_GenerateEndpointBudget(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/generate", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	clientID := "203.0.113.7"

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow(clientID, "/generate", "POST")
		require.True(t, allowed, "request %d should fit the generation budget", i+1)
		assert.Equal(t, 5, info.Limit)
	}

	allowed, info := limiter.Allow(clientID, "/generate", "POST")
	assert.False(t, allowed, "generation budget exhausted")
	assert.Equal(t, 5, info.Limit)

	// Unmatched endpoints fall back to the default limit.
	allowed, info = limiter.Allow(clientID, "/sections", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow("203.0.113.7", "/runs", "GET")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 100, allowedCount, "concurrent requests must not overdraw the bucket")
}

func TestLimiter_CleanupKeepsActiveBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		CleanupInterval: 100 * time.Millisecond,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		clientID := fmt.Sprintf("203.0.113.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/runs", "GET")
		require.True(t, allowed)
	}

	time.Sleep(150 * time.Millisecond)

	// Recently accessed buckets survive cleanup passes.
	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("203.0.113.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/runs", "GET")
		require.True(t, allowed)
	}

	time.Sleep(150 * time.Millisecond)

	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("203.0.113.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/runs", "GET")
		assert.True(t, allowed, "bucket for %s should survive cleanup", clientID)
	}
}

func TestLimiter_BurstBelowLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/generate/stream", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	clientID := "203.0.113.7"

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow(clientID, "/generate/stream", "POST")
		require.True(t, allowed, "burst request %d should be allowed", i+1)
	}

	allowed, _ := limiter.Allow(clientID, "/generate/stream", "POST")
	assert.False(t, allowed, "burst capacity caps immediate requests below the window limit")
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()
	require.NotNil(t, limiter)

	allowed, info := limiter.Allow("203.0.113.7", "/runs", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit, "nil config falls back to the permissive default")
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "generate exact match", path: "/generate", method: "POST", wantLimit: 10},
		{name: "stream exact match", path: "/generate/stream", method: "POST", wantLimit: 10},
		{name: "run delete by prefix", path: "/runs/8f14e45f/steps", method: "DELETE", wantLimit: 100},
		{name: "health is unlimited", path: "/health", method: "GET", wantLimit: 0},
		{name: "read falls through to default", path: "/sections", method: "GET", wantNil: true},
		{name: "method mismatch falls through", path: "/generate", method: "GET", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, config)
				return
			}
			require.NotNil(t, config)
			assert.Equal(t, tt.wantLimit, config.Limit)
		})
	}
}
