package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
)

type updateMediaSrv struct {
	repo  port.MediaRepository
	strg  port.Storage
	paths *pathgen.Generator
	cache port.Cache
}

// compile-time check: *updateMediaSrv must satisfy port.MediaUpdater
var _ port.MediaUpdater = (*updateMediaSrv)(nil)

// NewMediaUpdater constructs the metadata update service.
func NewMediaUpdater(repo port.MediaRepository, strg port.Storage, paths *pathgen.Generator, cache port.Cache) port.MediaUpdater {
	return &updateMediaSrv{repo: repo, strg: strg, paths: paths, cache: cache}
}

// UpdateMedia applies the requested metadata changes. Storage keys embed the
// collection, so moving a media between collections relocates its blobs.
func (s *updateMediaSrv) UpdateMedia(ctx context.Context, in port.UpdateMediaInput) (*model.Media, error) {
	m, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Collection != nil && *in.Collection != "" && *in.Collection != m.CollectionName {
		if err := s.relocate(ctx, m, *in.Collection); err != nil {
			return nil, err
		}
		m.CollectionName = *in.Collection
	}

	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Order != nil {
		m.OrderColumn = in.Order
	}
	for key, value := range in.Properties {
		if value == nil {
			m.ForgetCustomProperty(key)
		} else {
			m.SetCustomProperty(key, value)
		}
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed updating media #%d: %w", in.ID, err)
	}

	if err := s.cache.DeleteMediaDetails(ctx, in.ID); err != nil {
		log.Printf("failed deleting cache for media #%d: %v", in.ID, err)
	}

	return m, nil
}

// relocate moves the original and every generated conversion under the keys
// of the target collection. The original must move; a conversion that cannot
// move has its status reset so URLs fall back until it is regenerated.
func (s *updateMediaSrv) relocate(ctx context.Context, m *model.Media, collection string) error {
	target := *m
	target.CollectionName = collection

	if err := s.moveBlob(ctx, m.Disk, s.paths.Path(m, ""), s.paths.Path(&target, "")); err != nil {
		return fmt.Errorf("failed moving media #%d to collection %q: %w", m.ID, collection, err)
	}

	for name := range m.GeneratedConversions {
		if !m.HasGeneratedConversion(name) {
			continue
		}
		if err := s.moveBlob(ctx, m.Disk, s.paths.Path(m, name), s.paths.Path(&target, name)); err != nil {
			log.Printf("failed moving conversion %q of media #%d: %v", name, m.ID, err)
			m.MarkConversionGenerated(name, false)
		}
	}
	return nil
}

func (s *updateMediaSrv) moveBlob(ctx context.Context, disk, from, to string) error {
	rc, err := s.strg.GetFile(ctx, disk, from)
	if err != nil {
		if errors.Is(err, port.ErrObjectNotFound) {
			// nothing stored under the old key; nothing to move
			return nil
		}
		return err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("failed reading %q: %w", from, err)
	}

	info, _ := s.strg.StatFile(ctx, disk, from)
	opts := map[string]string{}
	if info.ContentType != "" {
		opts["Content-Type"] = info.ContentType
	}
	if err := s.strg.SaveFile(ctx, disk, to, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("failed writing %q: %w", to, err)
	}

	if err := s.strg.RemoveFile(ctx, disk, from); err != nil {
		// The copy succeeded; a leftover source blob is removed by a later
		// deletion sweep of the media's directory.
		log.Printf("failed removing relocated blob %q: %v", from, err)
	}
	return nil
}
