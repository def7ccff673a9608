package media

import (
	"context"
	"errors"
	"testing"

	"github.com/lcabrel/medialib-go/internal/model"
)

func TestDeleteMedia_NotFound(t *testing.T) {
	repo := &mockRepo{getErr: ErrNotFound}
	svc := NewMediaDeleter(repo, &mockDispatcher{}, &mockCache{}, &mockNotifier{})

	if err := svc.DeleteMedia(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMedia_Success(t *testing.T) {
	m := imageMedia(1)
	m.GeneratedConversions = model.ConversionStatus{"thumb": true}
	repo := &mockRepo{mediaRecord: m}
	d := &mockDispatcher{}
	cache := &mockCache{}
	notifier := &mockNotifier{}
	svc := NewMediaDeleter(repo, d, cache, notifier)

	if err := svc.DeleteMedia(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.softDeletedID != 1 {
		t.Error("expected the record to be soft-deleted")
	}
	if len(d.removalsFor) != 1 {
		t.Fatal("expected a file removal job")
	}
	snap := d.removalsFor[0]
	if snap.ID != 1 || !snap.GeneratedConversions["thumb"] {
		t.Error("expected the snapshot to carry id and conversion statuses")
	}
	if !cache.delCalled {
		t.Error("expected cache invalidation")
	}
	if len(notifier.deleted) != 1 {
		t.Error("expected a MediaDeleted notification")
	}
}

func TestDeleteMedia_RaceWithOtherDelete(t *testing.T) {
	repo := &mockRepo{mediaRecord: imageMedia(1), softDeleteErr: ErrNotFound}
	svc := NewMediaDeleter(repo, &mockDispatcher{}, &mockCache{}, &mockNotifier{})

	if err := svc.DeleteMedia(context.Background(), 1); err != nil {
		t.Fatalf("expected racing deletes to both succeed, got %v", err)
	}
}

func TestDeleteMedia_DispatchFailureIsNonFatal(t *testing.T) {
	repo := &mockRepo{mediaRecord: imageMedia(1)}
	d := &mockDispatcher{removalsErr: errors.New("redis down")}
	svc := NewMediaDeleter(repo, d, &mockCache{}, &mockNotifier{})

	if err := svc.DeleteMedia(context.Background(), 1); err != nil {
		t.Fatalf("expected delete to succeed despite dispatch failure, got %v", err)
	}
	if repo.softDeletedID != 1 {
		t.Error("expected the record to be soft-deleted")
	}
}

func TestBulkDelete_ContinuesPastFailures(t *testing.T) {
	repo := &mockRepo{getErr: ErrNotFound}
	svc := NewMediaDeleter(repo, &mockDispatcher{}, &mockCache{}, &mockNotifier{})

	err := svc.BulkDelete(context.Background(), []uint64{1, 2, 3})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected first failure to be reported, got %v", err)
	}
}
