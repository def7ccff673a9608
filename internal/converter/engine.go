package converter

import (
	"context"
	"fmt"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
)

// Engine dispatches conversions to the first registered generator that
// handles the media's mime type.
type Engine struct {
	generators []port.Generator
}

// compile-time check: *Engine must satisfy port.Generator
var _ port.Generator = (*Engine)(nil)

func NewEngine(generators ...port.Generator) *Engine {
	return &Engine{generators: generators}
}

func (e *Engine) CanHandle(mimeType string) bool {
	for _, g := range e.generators {
		if g.CanHandle(mimeType) {
			return true
		}
	}
	return false
}

func (e *Engine) Convert(ctx context.Context, media *model.Media, def conversion.Conversion) (string, error) {
	mimeType := ""
	if media.MimeType != nil {
		mimeType = *media.MimeType
	}
	for _, g := range e.generators {
		if g.CanHandle(mimeType) {
			return g.Convert(ctx, media, def)
		}
	}
	return "", fmt.Errorf("%w: %q", port.ErrUnsupportedMediaType, mimeType)
}
