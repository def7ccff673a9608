package port

import (
	"context"
	"time"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/uuid"
)

// CollectionSummary aggregates one collection of an owner.
type CollectionSummary struct {
	CollectionName string `json:"collection_name"`
	MediaCount     int    `json:"media_count"`
	TotalSize      int64  `json:"total_size"`
}

// MediaRepository defines persistence operations for media records.
// Soft-deleted rows are excluded everywhere except the purge path.
type MediaRepository interface {
	Create(ctx context.Context, media *model.Media) error
	Update(ctx context.Context, media *model.Media) error
	GetByID(ctx context.Context, id uint64) (*model.Media, error)
	GetByExternalID(ctx context.Context, id uuid.UUID) (*model.Media, error)
	GetByContentHash(ctx context.Context, hash string) (*model.Media, error)
	ListByOwner(ctx context.Context, ownerType string, ownerID uint64, collection string) ([]model.Media, error)
	Search(ctx context.Context, term string, limit int) ([]model.Media, error)
	UpdateOrder(ctx context.Context, id uint64, order uint) error
	SoftDelete(ctx context.Context, id uint64) error
	HardDelete(ctx context.Context, id uint64) error
	ListIDs(ctx context.Context) ([]uint64, error)
	ListSoftDeletedBefore(ctx context.Context, before time.Time) ([]model.Media, error)
	Collections(ctx context.Context, ownerType string, ownerID uint64) ([]CollectionSummary, error)
	TotalSize(ctx context.Context, ownerType string, ownerID uint64) (int64, error)
}
