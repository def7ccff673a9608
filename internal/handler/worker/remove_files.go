package worker

import (
	"context"
	"log"

	"github.com/lcabrel/medialib-go/internal/appctx"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/task"
)

// RemoveFilesHandler handles a remove-files task for a deleted media.
func RemoveFilesHandler(ctx context.Context, p task.RemoveFilesPayload, svc port.FileRemover) error {
	ctx = appctx.WithOperation(appctx.WithMediaID(ctx, p.Snapshot.ID), "remove_files")

	if err := svc.RemoveFiles(ctx, p.Snapshot); err != nil {
		log.Printf("❌  Failed to remove files of media #%d: %v", p.Snapshot.ID, err)
		return err
	}

	log.Printf("✅  Successfully removed files of media #%d", p.Snapshot.ID)
	return nil
}
