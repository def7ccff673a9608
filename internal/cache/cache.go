package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lcabrel/medialib-go/internal/port"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetMediaDetails(ctx context.Context, id uint64) ([]byte, error) {
	log.Printf("getting entry in cache for media #%d...", id)

	val, err := c.client.Get(ctx, getCacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

func (c *Cache) SetMediaDetails(ctx context.Context, id uint64, data []byte, ttl time.Duration) {
	log.Printf("creating entry in cache for media #%d, valid for %s...", id, ttl)

	if err := c.client.Set(ctx, getCacheKey(id), data, ttl).Err(); err != nil {
		// A failed write only costs a cache miss later.
		log.Printf("redis set failed for media #%d: %v", id, err)
	}
}

func (c *Cache) DeleteMediaDetails(ctx context.Context, id uint64) error {
	log.Printf("deleting entry in cache for media #%d...", id)

	if err := c.client.Del(ctx, getCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(id uint64) string {
	return "media:" + strconv.FormatUint(id, 10)
}
