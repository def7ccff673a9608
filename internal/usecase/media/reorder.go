package media

import (
	"context"
	"fmt"
	"log"

	"github.com/lcabrel/medialib-go/internal/port"
)

type reorderSrv struct {
	repo  port.MediaRepository
	cache port.Cache
}

// compile-time check: *reorderSrv must satisfy port.CollectionReorderer
var _ port.CollectionReorderer = (*reorderSrv)(nil)

// NewCollectionReorderer constructs the reorder service.
func NewCollectionReorderer(repo port.MediaRepository, cache port.Cache) port.CollectionReorderer {
	return &reorderSrv{repo: repo, cache: cache}
}

// Reorder assigns 1-based sequential order numbers: first to the listed ids in
// the given order, then to the collection's remaining items in their current
// order. Every listed id must belong to the collection.
func (s *reorderSrv) Reorder(ctx context.Context, in port.ReorderInput) error {
	items, err := s.repo.ListByOwner(ctx, in.OwnerType, in.OwnerID, in.Collection)
	if err != nil {
		return fmt.Errorf("failed loading collection %q: %w", in.Collection, err)
	}

	inCollection := make(map[uint64]bool, len(items))
	for _, item := range items {
		inCollection[item.ID] = true
	}

	seen := make(map[uint64]bool, len(in.OrderedIDs))
	for _, id := range in.OrderedIDs {
		if !inCollection[id] {
			return fmt.Errorf("%w: media #%d is not in collection %q", ErrInvalidOrder, id, in.Collection)
		}
		if seen[id] {
			return fmt.Errorf("%w: media #%d listed twice", ErrInvalidOrder, id)
		}
		seen[id] = true
	}

	order := uint(1)
	for _, id := range in.OrderedIDs {
		if err := s.applyOrder(ctx, id, order); err != nil {
			return err
		}
		order++
	}
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		if err := s.applyOrder(ctx, item.ID, order); err != nil {
			return err
		}
		order++
	}

	return nil
}

func (s *reorderSrv) applyOrder(ctx context.Context, id uint64, order uint) error {
	if err := s.repo.UpdateOrder(ctx, id, order); err != nil {
		return fmt.Errorf("failed ordering media #%d: %w", id, err)
	}
	if err := s.cache.DeleteMediaDetails(ctx, id); err != nil {
		log.Printf("failed deleting cache for media #%d: %v", id, err)
	}
	return nil
}
