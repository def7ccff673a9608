package cache

import (
	"context"
	"time"

	"github.com/lcabrel/medialib-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetMediaDetails(ctx context.Context, id uint64) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetMediaDetails(ctx context.Context, id uint64, data []byte, ttl time.Duration) {
}

func (n *NoopCache) DeleteMediaDetails(ctx context.Context, id uint64) error { return nil }
