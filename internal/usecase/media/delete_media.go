package media

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lcabrel/medialib-go/internal/port"
)

type deleteMediaSrv struct {
	repo       port.MediaRepository
	dispatcher port.TaskDispatcher
	cache      port.Cache
	notifier   port.Notifier
}

// compile-time check: *deleteMediaSrv must satisfy port.MediaDeleter
var _ port.MediaDeleter = (*deleteMediaSrv)(nil)

// NewMediaDeleter constructs the deletion service.
func NewMediaDeleter(
	repo port.MediaRepository,
	dispatcher port.TaskDispatcher,
	cache port.Cache,
	notifier port.Notifier,
) port.MediaDeleter {
	return &deleteMediaSrv{repo: repo, dispatcher: dispatcher, cache: cache, notifier: notifier}
}

// DeleteMedia snapshots the record, soft-deletes it, and hands the blobs to
// the removal job. The snapshot is taken first so file cleanup cannot depend
// on the row still existing.
func (s *deleteMediaSrv) DeleteMedia(ctx context.Context, id uint64) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	snapshot := m.Snapshot()

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Raced with another delete; treat as done.
			return nil
		}
		return fmt.Errorf("failed soft-deleting media #%d: %w", id, err)
	}

	if err := s.dispatcher.EnqueueRemoveFiles(ctx, snapshot); err != nil {
		// The record is gone either way; orphaned blobs are swept by purge.
		log.Printf("failed scheduling file removal for media #%d: %v", id, err)
	}

	if err := s.cache.DeleteMediaDetails(ctx, id); err != nil {
		log.Printf("failed deleting cache for media #%d: %v", id, err)
	}

	s.notifier.MediaDeleted(ctx, snapshot)

	return nil
}

// BulkDelete deletes each id independently; one failure does not stop the
// rest. The first error is returned after all ids were attempted.
func (s *deleteMediaSrv) BulkDelete(ctx context.Context, ids []uint64) error {
	var firstErr error
	for _, id := range ids {
		if err := s.DeleteMedia(ctx, id); err != nil {
			log.Printf("bulk delete: media #%d failed: %v", id, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("media #%d: %w", id, err)
			}
		}
	}
	return firstErr
}
