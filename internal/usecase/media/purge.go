package media

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lcabrel/medialib-go/internal/port"
)

type purgeSrv struct {
	repo    port.MediaRepository
	remover port.FileRemover
}

// compile-time check: *purgeSrv must satisfy port.MediaPurger
var _ port.MediaPurger = (*purgeSrv)(nil)

// NewMediaPurger constructs the retention sweep service.
func NewMediaPurger(repo port.MediaRepository, remover port.FileRemover) port.MediaPurger {
	return &purgeSrv{repo: repo, remover: remover}
}

// PurgeDeletedBefore hard-deletes rows soft-deleted before the cutoff. Blob
// removal runs again for each row: it is idempotent, and catches files whose
// scheduled cleanup never happened.
func (s *purgeSrv) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	rows, err := s.repo.ListSoftDeletedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed listing soft-deleted media: %w", err)
	}

	purged := 0
	for i := range rows {
		m := &rows[i]
		if err := s.remover.RemoveFiles(ctx, m.Snapshot()); err != nil {
			log.Printf("purge: file cleanup for media #%d incomplete: %v", m.ID, err)
		}
		if err := s.repo.HardDelete(ctx, m.ID); err != nil {
			log.Printf("purge: failed hard-deleting media #%d: %v", m.ID, err)
			continue
		}
		purged++
	}
	return purged, nil
}
