package pathgen

import (
	"path"
	"strconv"
	"strings"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/model"
)

// Generator derives deterministic storage keys for a media and its
// conversions. It performs no I/O; the embedded media id guarantees distinct
// keys even across owners and collections with colliding names.
type Generator struct {
	// formats maps a conversion name to its configured output format. Empty
	// entries (or unknown names) fall back to the webp rule.
	formats map[string]string
}

// New builds a Generator resolving conversion extensions from the given
// definitions.
func New(defs []conversion.Conversion) *Generator {
	formats := make(map[string]string, len(defs))
	for _, d := range defs {
		if d.Format != "" {
			formats[d.Name] = strings.ToLower(d.Format)
		}
	}
	return &Generator{formats: formats}
}

// Path returns the storage key of the original file when conversionName is
// empty, or of the named conversion otherwise.
func (g *Generator) Path(m *model.Media, conversionName string) string {
	base := g.basePath(m)
	if conversionName == "" {
		return path.Join(base, m.FileName)
	}
	return path.Join(base, g.conversionFileName(m, conversionName))
}

// Dir returns the directory holding all of the media's files.
func (g *Generator) Dir(m *model.Media) string {
	return g.basePath(m)
}

// basePath layout: ownerType/ownerID/collection/mediaID
func (g *Generator) basePath(m *model.Media) string {
	return path.Join(
		SanitizeDirectoryName(shortName(m.OwnerType)),
		strconv.FormatUint(m.OwnerID, 10),
		m.CollectionName,
		strconv.FormatUint(m.ID, 10),
	)
}

func (g *Generator) conversionFileName(m *model.Media, conversionName string) string {
	ext := path.Ext(m.FileName)
	base := strings.TrimSuffix(m.FileName, ext)
	resolved := g.conversionExtension(conversionName, strings.TrimPrefix(ext, "."))
	return base + "-" + conversionName + "." + resolved
}

// rasterExtensions are converted to webp by default.
var rasterExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true, "tiff": true,
}

func (g *Generator) conversionExtension(conversionName, originalExtension string) string {
	if f, ok := g.formats[conversionName]; ok {
		return f
	}
	if rasterExtensions[strings.ToLower(originalExtension)] {
		return "webp"
	}
	return originalExtension
}

// shortName keeps only the last dot- or slash-separated segment of an owner
// type, so fully qualified type names map to their base name.
func shortName(ownerType string) string {
	if i := strings.LastIndexAny(ownerType, "./\\"); i >= 0 {
		return ownerType[i+1:]
	}
	return ownerType
}

// SanitizeDirectoryName replaces every rune outside [A-Za-z0-9_-] with an
// underscore. Garbage input degrades to underscores, never an error.
func SanitizeDirectoryName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// SanitizeFileName strips every rune outside [A-Za-z0-9_-] from the base name,
// preserving the extension.
func SanitizeFileName(fileName string) string {
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String() + ext
}
