package port

import (
	"context"

	"github.com/lcabrel/medialib-go/internal/model"
)

// Notifier emits fire-and-forget events for external subscribers. No delivery
// guarantee; failures are logged inside implementations and never surface.
type Notifier interface {
	MediaAdded(ctx context.Context, media *model.Media)
	MediaDeleted(ctx context.Context, snapshot model.FileSnapshot)
	ConversionCompleted(ctx context.Context, mediaID uint64, conversionName string)
}
