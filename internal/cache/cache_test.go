package cache

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/config"
)

// A nil cache is the disabled state; every call must be a safe no-op so
// services never branch on whether caching is configured.
func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var out []string
	if c.Get(ctx, "key", &out) {
		t.Error("nil cache must always miss")
	}

	c.Set(ctx, "key", []string{"value"}) // must not panic

	if err := c.Close(); err != nil {
		t.Errorf("Close on nil cache: %v", err)
	}
}

func TestNewWithoutAddrDisablesCache(t *testing.T) {
	c := New(&config.RedisConfig{}, zerolog.Nop())
	if c != nil {
		t.Error("empty addr should disable caching")
	}
}
