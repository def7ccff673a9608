package event

import (
	"context"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
)

type NoopNotifier struct{}

// compile-time check: *NoopNotifier must satisfy port.Notifier
var _ port.Notifier = (*NoopNotifier)(nil)

func NewNoop() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) MediaAdded(ctx context.Context, media *model.Media) {}

func (n *NoopNotifier) MediaDeleted(ctx context.Context, snapshot model.FileSnapshot) {}

func (n *NoopNotifier) ConversionCompleted(ctx context.Context, mediaID uint64, conversionName string) {
}
