package port

import (
	"context"

	"github.com/lcabrel/medialib-go/internal/model"
)

// TaskDispatcher schedules the asynchronous jobs of the library. The queued
// implementation enqueues to the external job runner; the inline one runs the
// use case synchronously in the caller's goroutine.
type TaskDispatcher interface {
	EnqueueGenerateConversions(ctx context.Context, mediaID uint64) error
	EnqueueRemoveFiles(ctx context.Context, snapshot model.FileSnapshot) error
}
