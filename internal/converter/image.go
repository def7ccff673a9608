package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	stddraw "image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
)

// imageGenerator converts raster originals: decode, apply the fit policy,
// encode at the requested quality, optionally run the optimisation pass.
type imageGenerator struct {
	strg  port.Storage
	paths *pathgen.Generator
	opt   port.FileOptimiser
}

// compile-time check: *imageGenerator must satisfy port.Generator
var _ port.Generator = (*imageGenerator)(nil)

// NewImageGenerator constructs the raster image generator.
func NewImageGenerator(strg port.Storage, paths *pathgen.Generator, opt port.FileOptimiser) port.Generator {
	return &imageGenerator{strg: strg, paths: paths, opt: opt}
}

func (g *imageGenerator) CanHandle(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") && mimeType != "image/svg+xml"
}

func (g *imageGenerator) Convert(ctx context.Context, m *model.Media, def conversion.Conversion) (string, error) {
	srcKey := g.paths.Path(m, "")

	rc, err := g.strg.GetFile(ctx, m.Disk, srcKey)
	if err != nil {
		if errors.Is(err, port.ErrObjectNotFound) {
			return "", fmt.Errorf("source file %q not found: %w", srcKey, err)
		}
		return "", err
	}
	defer func() { _ = rc.Close() }()

	img, srcFormat, err := image.Decode(rc)
	if err != nil {
		return "", fmt.Errorf("failed to decode source %q: %w", srcKey, err)
	}

	img = applyFit(img, def)

	format := outputFormat(def, m.Extension(), srcFormat)
	data, contentType, err := encode(img, format, def.Quality)
	if err != nil {
		return "", err
	}

	if !def.SkipOptimisation {
		optimised, err := g.opt.Optimise(format, data, def.Quality)
		if err != nil {
			// Optimisation is best-effort: keep the unoptimised bytes.
			log.Printf("optimisation pass failed for conversion %q of media #%d: %v", def.Name, m.ID, err)
		} else {
			data = optimised
		}
	}

	destKey := g.paths.Path(m, def.Name)
	if err := g.strg.SaveFile(ctx, m.Disk, destKey, bytes.NewReader(data), int64(len(data)), map[string]string{"Content-Type": contentType}); err != nil {
		return "", fmt.Errorf("failed to save conversion %q: %w", destKey, err)
	}
	return destKey, nil
}

// outputFormat resolves the encoded format: the conversion's explicit format,
// else webp for common raster inputs, else the source format unchanged.
func outputFormat(def conversion.Conversion, extension, srcFormat string) string {
	if def.Format != "" {
		return strings.ToLower(def.Format)
	}
	ext := strings.ToLower(extension)
	switch ext {
	case "jpg", "jpeg", "png", "gif", "bmp", "tiff":
		return "webp"
	case "":
		return srcFormat
	default:
		return ext
	}
}

// applyFit resizes per the conversion's fit mode. Zero on both axes means
// pass-through.
func applyFit(img image.Image, def conversion.Conversion) image.Image {
	w, h := def.Width, def.Height
	if w == 0 && h == 0 {
		return img
	}

	switch def.Fit {
	case conversion.FitFill:
		if w > 0 && h > 0 {
			return scaleTo(img, w, h)
		}
		return contain(img, w, h)
	case conversion.FitCover, conversion.FitCrop:
		if w > 0 && h > 0 {
			return coverCrop(img, w, h)
		}
		return contain(img, w, h)
	default:
		return contain(img, w, h)
	}
}

// contain fits within the box preserving aspect ratio. With a single capped
// axis the other is computed proportionally and the image is never upscaled.
func contain(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	ow, oh := b.Dx(), b.Dy()
	if ow == 0 || oh == 0 {
		return img
	}

	switch {
	case w > 0 && h > 0:
		f := minf(float64(w)/float64(ow), float64(h)/float64(oh))
		return scaleTo(img, roundDim(float64(ow)*f), roundDim(float64(oh)*f))
	case w > 0:
		if ow <= w {
			return img
		}
		return scaleTo(img, w, roundDim(float64(oh)*float64(w)/float64(ow)))
	case h > 0:
		if oh <= h {
			return img
		}
		return scaleTo(img, roundDim(float64(ow)*float64(h)/float64(oh)), h)
	default:
		return img
	}
}

// coverCrop scales to fill the box, then crops the centered excess to the
// exact dimensions.
func coverCrop(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	ow, oh := b.Dx(), b.Dy()
	if ow == 0 || oh == 0 {
		return img
	}

	f := maxf(float64(w)/float64(ow), float64(h)/float64(oh))
	sw, sh := roundDim(float64(ow)*f), roundDim(float64(oh)*f)
	if sw < w {
		sw = w
	}
	if sh < h {
		sh = h
	}
	scaled := scaleTo(img, sw, sh)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	offset := image.Pt((sw-w)/2, (sh-h)/2)
	stddraw.Draw(dst, dst.Bounds(), scaled, offset, stddraw.Src)
	return dst
}

func scaleTo(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

func roundDim(f float64) int {
	n := int(f + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// encode serialises the image in the given format. Quality drives the lossy
// encoders; PNG maps it onto a compression level instead.
func encode(img image.Image, format string, quality int) ([]byte, string, error) {
	buf := &bytes.Buffer{}
	switch format {
	case "jpg", "jpeg":
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	case "png":
		enc := png.Encoder{CompressionLevel: pngCompressionLevel(quality)}
		if err := enc.Encode(buf, img); err != nil {
			return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	case "gif":
		if err := gif.Encode(buf, img, &gif.Options{NumColors: 256}); err != nil {
			return nil, "", fmt.Errorf("failed to encode GIF: %w", err)
		}
		return buf.Bytes(), "image/gif", nil
	default:
		if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, "", fmt.Errorf("failed to encode WebP: %w", err)
		}
		return buf.Bytes(), "image/webp", nil
	}
}

func pngCompressionLevel(quality int) png.CompressionLevel {
	switch {
	case quality >= 67:
		return png.BestCompression
	case quality >= 34:
		return png.DefaultCompression
	default:
		return png.BestSpeed
	}
}
