package media

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/urlgen"
	"github.com/lcabrel/medialib-go/internal/uuid"
)

// detailsTTL bounds staleness of cached media details.
const detailsTTL = time.Hour

type mediaGetterSrv struct {
	repo     port.MediaRepository
	urls     *urlgen.Generator
	provider conversion.Provider
	cache    port.Cache
}

// compile-time check: *mediaGetterSrv must satisfy port.MediaGetter
var _ port.MediaGetter = (*mediaGetterSrv)(nil)

// NewMediaGetter constructs the read service.
func NewMediaGetter(
	repo port.MediaRepository,
	urls *urlgen.Generator,
	provider conversion.Provider,
	cache port.Cache,
) port.MediaGetter {
	return &mediaGetterSrv{repo: repo, urls: urls, provider: provider, cache: cache}
}

func (s *mediaGetterSrv) GetMedia(ctx context.Context, id uint64) (port.GetMediaOutput, error) {
	if cached, err := s.cache.GetMediaDetails(ctx, id); err == nil && cached != nil {
		var out port.GetMediaOutput
		if err := json.Unmarshal(cached, &out); err == nil {
			return out, nil
		}
		log.Printf("corrupt cache entry for media #%d, rebuilding", id)
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return port.GetMediaOutput{}, err
	}

	out := port.GetMediaOutput{
		Media:          *m,
		URL:            s.urls.URL(ctx, m, ""),
		ConversionURLs: map[string]string{},
	}
	for _, def := range s.provider.ConversionsFor(m.OwnerType) {
		out.ConversionURLs[def.Name] = s.urls.URL(ctx, m, def.Name)
	}

	if data, err := json.Marshal(out); err == nil {
		s.cache.SetMediaDetails(ctx, id, data, detailsTTL)
	}

	return out, nil
}

func (s *mediaGetterSrv) GetMediaByExternalID(ctx context.Context, id uuid.UUID) (port.GetMediaOutput, error) {
	m, err := s.repo.GetByExternalID(ctx, id)
	if err != nil {
		return port.GetMediaOutput{}, err
	}
	return s.GetMedia(ctx, m.ID)
}
