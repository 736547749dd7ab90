package redis

import (
	"context"
	"testing"
	"time"
)

func TestSummaryCache_SetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewSummaryCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "abc", "Healthy dilution.", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found, err := cache.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found || val != "Healthy dilution." {
		t.Fatalf("expected cached text, got found=%v val=%q", found, val)
	}

	if !mr.Exists(cache.prefix + "abc") {
		t.Fatalf("expected key under prefix %q", cache.prefix)
	}
}

func TestSummaryCache_Miss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewSummaryCache(client)

	val, found, err := cache.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("miss should not be an error: %v", err)
	}
	if found || val != "" {
		t.Fatalf("expected miss, got found=%v val=%q", found, val)
	}
}

func TestSummaryCache_Expires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewSummaryCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "abc", "text", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, found, _ := cache.Get(ctx, "abc"); found {
		t.Fatal("expected entry to expire")
	}
}

func TestSummaryCache_ServerDown(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()

	cache := NewSummaryCache(client)
	mr.Close()

	if _, _, err := cache.Get(context.Background(), "abc"); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
	if err := cache.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail")
	}
}
