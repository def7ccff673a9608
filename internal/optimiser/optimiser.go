package optimiser

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lcabrel/medialib-go/internal/port"
)

// Optimiser re-encodes freshly generated derivatives to squeeze out bytes the
// first encode pass left behind. Behaviour per format:
//   - webp, jpg/jpeg: lossy re-encode at the conversion's quality.
//   - png: lossless recompress at best compression.
//   - everything else: returned as-is.
type Optimiser struct {
	webpEnc WebPEncoder
}

// compile-time check: *Optimiser must satisfy port.FileOptimiser
var _ port.FileOptimiser = (*Optimiser)(nil)

func NewOptimiser(webpEnc WebPEncoder) *Optimiser {
	log.Println("initialising optimiser...")
	return &Optimiser{webpEnc: webpEnc}
}

func (o *Optimiser) Optimise(format string, data []byte, quality int) ([]byte, error) {
	switch format {
	case "webp":
		img, err := decode(data)
		if err != nil {
			return nil, err
		}
		buf := &bytes.Buffer{}
		if err := o.webpEnc.Encode(buf, img, quality); err != nil {
			return nil, fmt.Errorf("optimiser: failed to encode WebP: %w", err)
		}
		return smaller(data, buf.Bytes()), nil

	case "jpg", "jpeg":
		img, err := decode(data)
		if err != nil {
			return nil, err
		}
		buf := &bytes.Buffer{}
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("optimiser: failed to encode JPEG: %w", err)
		}
		return smaller(data, buf.Bytes()), nil

	case "png":
		img, err := decode(data)
		if err != nil {
			return nil, err
		}
		buf := &bytes.Buffer{}
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(buf, img); err != nil {
			return nil, fmt.Errorf("optimiser: failed to encode PNG: %w", err)
		}
		return smaller(data, buf.Bytes()), nil

	default:
		return data, nil
	}
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("optimiser: failed to decode image: %w", err)
	}
	return img, nil
}

// smaller keeps the re-encoded bytes only when they actually shrank.
func smaller(original, reencoded []byte) []byte {
	if len(reencoded) < len(original) {
		return reencoded
	}
	return original
}

// WebPEncoder abstracts the cgo webp encoder for tests.
type WebPEncoder interface {
	Encode(w io.Writer, img image.Image, quality int) error
}
