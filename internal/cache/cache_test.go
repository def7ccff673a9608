package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)
	// point the real client at it
	rdb := redis.NewClient(&redis.Options{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
	})
	return &Cache{client: rdb}, mr
}

func TestGetSetDeleteMediaDetails(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	payload := []byte(`{"media":{"id":42},"url":"http://cdn.local/media/img.png"}`)

	// 1) Cache miss
	got, err := c.GetMediaDetails(ctx, 42)
	if err != nil {
		t.Fatalf("GetMediaDetails miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetMediaDetails miss: got %q; want nil", got)
	}

	// 2) Set + Get
	c.SetMediaDetails(ctx, 42, payload, time.Hour)
	if ttl := mr.TTL(getCacheKey(42)); ttl < 59*time.Minute || ttl > time.Hour {
		t.Errorf("redis TTL = %v; want ~1h", ttl)
	}
	got, err = c.GetMediaDetails(ctx, 42)
	if err != nil {
		t.Fatalf("GetMediaDetails hit: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("roundtrip mismatch: got %q; want %q", got, payload)
	}

	// 3) Delete + miss again
	if err := c.DeleteMediaDetails(ctx, 42); err != nil {
		t.Fatalf("DeleteMediaDetails: %v", err)
	}
	if got, _ := c.GetMediaDetails(ctx, 42); got != nil {
		t.Errorf("after delete, GetMediaDetails = %q; want nil", got)
	}
}

func TestGetMediaDetails_RedisError(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	// Simulate Redis unreachable
	mr.Close()

	got, err := c.GetMediaDetails(ctx, 42)
	if got != nil {
		t.Errorf("Expected nil on Redis error, got %q", got)
	}
	if err == nil || !strings.Contains(err.Error(), "redis get failed") {
		t.Errorf("Expected redis get failed error, got %v", err)
	}
}

func TestSetMediaDetails_RedisErrorIsSwallowed(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	mr.Close()

	// a failed write must not panic or surface an error
	c.SetMediaDetails(ctx, 42, []byte("{}"), time.Minute)
}

func TestDeleteMediaDetails_RedisError(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	mr.Close()

	err := c.DeleteMediaDetails(ctx, 42)
	if err == nil || !strings.Contains(err.Error(), "redis del failed") {
		t.Errorf("Expected redis del failed error, got %v", err)
	}
}

func TestGetCacheKey(t *testing.T) {
	if got := getCacheKey(42); got != "media:42" {
		t.Errorf("getCacheKey(42) = %q; want %q", got, "media:42")
	}
}
