package task

import (
	"context"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
)

// InlineDispatcher runs jobs synchronously in the caller's goroutine. Used
// when conversions are configured to run in-request, and in tools that have
// no queue to hand work to.
type InlineDispatcher struct {
	conversions port.ConversionGenerator
	remover     port.FileRemover
}

var _ port.TaskDispatcher = (*InlineDispatcher)(nil)

func NewInlineDispatcher(conversions port.ConversionGenerator, remover port.FileRemover) *InlineDispatcher {
	return &InlineDispatcher{conversions: conversions, remover: remover}
}

func (d *InlineDispatcher) EnqueueGenerateConversions(ctx context.Context, mediaID uint64) error {
	return d.conversions.GenerateConversions(ctx, mediaID)
}

func (d *InlineDispatcher) EnqueueRemoveFiles(ctx context.Context, snapshot model.FileSnapshot) error {
	return d.remover.RemoveFiles(ctx, snapshot)
}
