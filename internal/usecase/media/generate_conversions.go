package media

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/port"
)

type generateConversionsSrv struct {
	repo     port.MediaRepository
	engine   port.Generator
	provider conversion.Provider
	cache    port.Cache
	notifier port.Notifier
}

// compile-time check: *generateConversionsSrv must satisfy port.ConversionGenerator
var _ port.ConversionGenerator = (*generateConversionsSrv)(nil)

// NewConversionGenerator constructs the conversion job service.
func NewConversionGenerator(
	repo port.MediaRepository,
	engine port.Generator,
	provider conversion.Provider,
	cache port.Cache,
	notifier port.Notifier,
) port.ConversionGenerator {
	return &generateConversionsSrv{
		repo:     repo,
		engine:   engine,
		provider: provider,
		cache:    cache,
		notifier: notifier,
	}
}

// GenerateConversions runs every registered conversion for the media. Each
// conversion's outcome is recorded independently: one failure neither aborts
// the run nor poisons the outcomes already written.
func (s *generateConversionsSrv) GenerateConversions(ctx context.Context, mediaID uint64) error {
	m, err := s.repo.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// The media was deleted before the job ran; nothing to do.
			log.Printf("media #%d gone before conversion run, skipping", mediaID)
			return nil
		}
		return fmt.Errorf("failed loading media #%d: %w", mediaID, err)
	}

	mimeType := ""
	if m.MimeType != nil {
		mimeType = *m.MimeType
	}
	if !s.engine.CanHandle(mimeType) {
		log.Printf("no conversion handler for %q, leaving media #%d untouched", mimeType, mediaID)
		return nil
	}

	defs := s.provider.ConversionsFor(m.OwnerType)
	if len(defs) == 0 {
		return nil
	}

	var failed []string
	for _, def := range defs {
		if _, err := s.engine.Convert(ctx, m, def); err != nil {
			log.Printf("conversion %q failed for media #%d: %v", def.Name, mediaID, err)
			m.MarkConversionGenerated(def.Name, false)
			failed = append(failed, def.Name)
		} else {
			m.MarkConversionGenerated(def.Name, true)
		}

		// Persist after every conversion so a crash mid-run loses at most
		// one outcome.
		if err := s.repo.Update(ctx, m); err != nil {
			return fmt.Errorf("failed persisting conversion outcomes for media #%d: %w", mediaID, err)
		}

		if m.HasGeneratedConversion(def.Name) {
			s.notifier.ConversionCompleted(ctx, mediaID, def.Name)
		}
	}

	if err := s.cache.DeleteMediaDetails(ctx, mediaID); err != nil {
		log.Printf("failed deleting cache for media #%d: %v", mediaID, err)
	}

	if len(failed) > 0 {
		// Failed outcomes live on the status map and URLs fall back to the
		// original; only a regenerate run retries them. Raising here would
		// make the job runner re-run conversions that already succeeded.
		log.Printf("conversions %v failed for media #%d", failed, mediaID)
	}
	return nil
}
