package media

import (
	"context"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
)

type mediaListerSrv struct {
	repo port.MediaRepository
}

// compile-time check: *mediaListerSrv must satisfy port.MediaLister
var _ port.MediaLister = (*mediaListerSrv)(nil)

// NewMediaLister constructs the listing service.
func NewMediaLister(repo port.MediaRepository) port.MediaLister {
	return &mediaListerSrv{repo: repo}
}

func (s *mediaListerSrv) ListByOwner(ctx context.Context, ownerType string, ownerID uint64, collection string) ([]model.Media, error) {
	return s.repo.ListByOwner(ctx, ownerType, ownerID, collection)
}

func (s *mediaListerSrv) Search(ctx context.Context, term string, limit int) ([]model.Media, error) {
	return s.repo.Search(ctx, term, limit)
}

func (s *mediaListerSrv) Collections(ctx context.Context, ownerType string, ownerID uint64) ([]port.CollectionSummary, error) {
	return s.repo.Collections(ctx, ownerType, ownerID)
}
