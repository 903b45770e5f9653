package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/volunteerhub/api/internal/cache"
)

func TestMemoryCache_SetGetExpire(t *testing.T) {
	c := cache.NewMemory(20 * time.Millisecond)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Set(ctx, "k", []byte("v"))

	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("want hit with v, got %q ok=%v", got, ok)
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("entry should expire after the TTL")
	}
}

func TestMemoryCache_Invalidate(t *testing.T) {
	c := cache.NewMemory(time.Minute)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))

	c.Invalidate(ctx)

	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatal("invalidate must drop every entry")
	}
	if _, ok := c.Get(ctx, "b"); ok {
		t.Fatal("invalidate must drop every entry")
	}
}
