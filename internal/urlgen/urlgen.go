package urlgen

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
)

// Generator resolves servable URLs for a media and its conversions. A missing
// or failed conversion silently resolves to the original's URL so links never
// break.
type Generator struct {
	paths *pathgen.Generator
	strg  port.Storage
}

func New(paths *pathgen.Generator, strg port.Storage) *Generator {
	return &Generator{paths: paths, strg: strg}
}

// URL returns the URL for the original (empty conversionName) or the named
// conversion. When the conversion's bytes are absent from storage and its
// status is not generated, the original's URL is returned instead.
func (g *Generator) URL(ctx context.Context, m *model.Media, conversionName string) string {
	key := g.paths.Path(m, conversionName)

	if conversionName != "" && !g.exists(ctx, m.Disk, key) && !m.HasGeneratedConversion(conversionName) {
		key = g.paths.Path(m, "")
	}

	return g.strg.PublicURL(m.Disk, key)
}

// TemporaryURL returns a presigned URL when the disk supports it, falling back
// to the regular URL otherwise. It never fails.
func (g *Generator) TemporaryURL(ctx context.Context, m *model.Media, conversionName string, expiry time.Duration) string {
	key := g.paths.Path(m, conversionName)

	url, err := g.strg.PresignedDownloadURL(ctx, m.Disk, key, expiry)
	if err != nil {
		if !errors.Is(err, port.ErrPresignUnsupported) {
			log.Printf("presigned URL for %q failed, serving regular URL: %v", key, err)
		}
		return g.URL(ctx, m, conversionName)
	}
	return url
}

// exists treats storage errors as "does not exist": URL resolution must not
// crash on an existence check.
func (g *Generator) exists(ctx context.Context, disk, key string) bool {
	ok, err := g.strg.FileExists(ctx, disk, key)
	if err != nil {
		log.Printf("existence check for %q on disk %q failed: %v", key, disk, err)
		return false
	}
	return ok
}
