package media

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
)

func collectionOf(ids ...uint64) []model.Media {
	var out []model.Media
	for _, id := range ids {
		out = append(out, model.Media{ID: id, CollectionName: "gallery"})
	}
	return out
}

func TestReorder_RejectsForeignID(t *testing.T) {
	repo := &mockRepo{byOwner: collectionOf(1, 2)}
	svc := NewCollectionReorderer(repo, &mockCache{})

	err := svc.Reorder(context.Background(), port.ReorderInput{
		OwnerType: "post", OwnerID: 7, Collection: "gallery",
		OrderedIDs: []uint64{1, 99},
	})
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
	if len(repo.orderedIDs) != 0 {
		t.Error("expected no order to be written")
	}
}

func TestReorder_RejectsDuplicateID(t *testing.T) {
	repo := &mockRepo{byOwner: collectionOf(1, 2)}
	svc := NewCollectionReorderer(repo, &mockCache{})

	err := svc.Reorder(context.Background(), port.ReorderInput{
		OwnerType: "post", OwnerID: 7, Collection: "gallery",
		OrderedIDs: []uint64{1, 1},
	})
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
}

func TestReorder_AssignsSequentialOrders(t *testing.T) {
	repo := &mockRepo{byOwner: collectionOf(1, 2, 3, 4)}
	cache := &mockCache{}
	svc := NewCollectionReorderer(repo, cache)

	err := svc.Reorder(context.Background(), port.ReorderInput{
		OwnerType: "post", OwnerID: 7, Collection: "gallery",
		OrderedIDs: []uint64{3, 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// listed ids first, then the rest in their current order
	wantIDs := []uint64{3, 1, 2, 4}
	wantOrders := []uint{1, 2, 3, 4}
	if !reflect.DeepEqual(repo.orderedIDs, wantIDs) {
		t.Errorf("expected ids %v, got %v", wantIDs, repo.orderedIDs)
	}
	if !reflect.DeepEqual(repo.orders, wantOrders) {
		t.Errorf("expected orders %v, got %v", wantOrders, repo.orders)
	}
	if !cache.delCalled {
		t.Error("expected cache invalidation for reordered items")
	}
}

func TestReorder_UpdateError(t *testing.T) {
	repo := &mockRepo{byOwner: collectionOf(1), orderErr: errors.New("db fail")}
	svc := NewCollectionReorderer(repo, &mockCache{})

	err := svc.Reorder(context.Background(), port.ReorderInput{
		OwnerType: "post", OwnerID: 7, Collection: "gallery",
		OrderedIDs: []uint64{1},
	})
	if err == nil {
		t.Fatal("expected an error")
	}
}
