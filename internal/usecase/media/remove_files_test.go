package media

import (
	"context"
	"errors"
	"testing"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
)

func testSnapshot() model.FileSnapshot {
	return model.FileSnapshot{
		ID:             1,
		OwnerType:      "post",
		OwnerID:        7,
		CollectionName: "default",
		FileName:       "img.png",
		Disk:           "media",
		GeneratedConversions: model.ConversionStatus{
			"thumb": true,
			"large": false,
		},
	}
}

func TestRemoveFiles_RemovesOriginalAndConversions(t *testing.T) {
	strg := &mockStorage{}
	svc := NewFileRemover(strg, pathgen.New(nil))

	if err := svc.RemoveFiles(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{
		"post/7/default/1/img.png":        true,
		"post/7/default/1/img-thumb.webp": true,
		"post/7/default/1/img-large.webp": true,
	}
	if len(strg.removedKeys) != len(want) {
		t.Fatalf("expected %d removals, got %v", len(want), strg.removedKeys)
	}
	for _, key := range strg.removedKeys {
		if !want[key] {
			t.Errorf("unexpected removal %q", key)
		}
	}
}

func TestRemoveFiles_MissingBlobIsSuccess(t *testing.T) {
	strg := &mockStorage{removeErr: port.ErrObjectNotFound}
	svc := NewFileRemover(strg, pathgen.New(nil))

	if err := svc.RemoveFiles(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("expected missing blobs to count as removed, got %v", err)
	}
}

func TestRemoveFiles_SweepsLeftovers(t *testing.T) {
	strg := &mockStorage{keys: []string{"post/7/default/1/img-old.webp"}}
	svc := NewFileRemover(strg, pathgen.New(nil))

	if err := svc.RemoveFiles(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, key := range strg.removedKeys {
		if key == "post/7/default/1/img-old.webp" {
			found = true
		}
	}
	if !found {
		t.Error("expected the stray derivative to be swept")
	}
}

func TestRemoveFiles_ReportsFailures(t *testing.T) {
	strg := &mockStorage{removeErr: errors.New("minio down")}
	svc := NewFileRemover(strg, pathgen.New(nil))

	if err := svc.RemoveFiles(context.Background(), testSnapshot()); err == nil {
		t.Fatal("expected an error so the job can retry")
	}
	// every delete must still have been attempted
	if len(strg.removedKeys) != 3 {
		t.Errorf("expected all 3 removals attempted, got %v", strg.removedKeys)
	}
}
