package media

import (
	"context"

	"github.com/lcabrel/medialib-go/internal/port"
)

type regenerateSrv struct {
	generator port.ConversionGenerator
}

// compile-time check: *regenerateSrv must satisfy port.ConversionRegenerator
var _ port.ConversionRegenerator = (*regenerateSrv)(nil)

// NewConversionRegenerator constructs the regeneration service. Regeneration
// is the same run as first-time generation: existing derivatives are
// overwritten in place, and concurrent runs resolve last-write-wins.
func NewConversionRegenerator(generator port.ConversionGenerator) port.ConversionRegenerator {
	return &regenerateSrv{generator: generator}
}

func (s *regenerateSrv) RegenerateConversions(ctx context.Context, mediaID uint64) error {
	return s.generator.GenerateConversions(ctx, mediaID)
}
