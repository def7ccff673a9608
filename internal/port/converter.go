package port

import (
	"context"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/model"
)

// Generator turns an original file into one named conversion. Implementations
// are registered per media category (raster images, video thumbnails, ...).
type Generator interface {
	CanHandle(mimeType string) bool
	// Convert reads the original from storage, writes the derivative, and
	// returns the storage key written.
	Convert(ctx context.Context, media *model.Media, def conversion.Conversion) (string, error)
}
