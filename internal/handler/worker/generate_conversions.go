package worker

import (
	"context"
	"log"

	"github.com/lcabrel/medialib-go/internal/appctx"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/task"
)

// GenerateConversionsHandler handles a generate-conversions task. It tags the
// context for logging and delegates to the conversion service.
func GenerateConversionsHandler(ctx context.Context, p task.GenerateConversionsPayload, svc port.ConversionGenerator) error {
	ctx = appctx.WithOperation(appctx.WithMediaID(ctx, p.MediaID), "generate_conversions")

	if err := svc.GenerateConversions(ctx, p.MediaID); err != nil {
		log.Printf("❌  Failed to generate conversions for media #%d: %v", p.MediaID, err)
		return err
	}

	log.Printf("✅  Successfully generated conversions for media #%d", p.MediaID)
	return nil
}
