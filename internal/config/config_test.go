package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.False(t, cfg.Methods["POST"])
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, "route_query", cfg.KeyStrategy)
	assert.Equal(t, "catalog", cfg.Prefix)
	assert.Equal(t, 1048576, cfg.MaxBodyBytes)
}

func TestLoadCacheConfigOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")
	cfg := LoadCacheConfig()
	assert.False(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.Equal(t, 2*time.Minute, cfg.TTL)
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Minute, cfg.TTL)
	assert.Equal(t, "ip_user_route", cfg.KeyStrategy)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-5")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "4s")
	t.Setenv("RATE_LIMIT_TTL", "1s") // below 5x interval, gets raised
	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 4*time.Second, cfg.RefillInterval)
	assert.Equal(t, 20*time.Second, cfg.TTL)
}

func TestLoadRateLimitConfigBurstAlias(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "3s")
	cfg := LoadRateLimitConfig()
	assert.Equal(t, 5, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 3*time.Second, cfg.RefillInterval)
}
