package task

import (
	"context"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueGenerateConversions(ctx context.Context, mediaID uint64) error {
	return nil
}

func (d *NoopDispatcher) EnqueueRemoveFiles(ctx context.Context, snapshot model.FileSnapshot) error {
	return nil
}
