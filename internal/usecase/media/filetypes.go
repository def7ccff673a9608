package media

// DefaultAllowedMimeTypes is the accept-list applied when the caller does not
// configure one.
var DefaultAllowedMimeTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"image/gif":       true,
	"image/bmp":       true,
	"image/tiff":      true,
	"image/svg+xml":   true,
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
	"audio/mpeg":      true,
	"audio/ogg":       true,
	"audio/wav":       true,
	"application/pdf": true,
	"application/zip": true,
	"text/plain":      true,
	"text/markdown":   true,
	"text/csv":        true,
}
