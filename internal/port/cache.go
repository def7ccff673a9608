package port

import (
	"context"
	"time"
)

// Cache stores rendered media details keyed by internal id.
type Cache interface {
	GetMediaDetails(ctx context.Context, id uint64) ([]byte, error)
	SetMediaDetails(ctx context.Context, id uint64, data []byte, ttl time.Duration)
	DeleteMediaDetails(ctx context.Context, id uint64) error
}
