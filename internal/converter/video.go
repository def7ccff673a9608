package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
)

// videoGenerator derives a thumbnail frame for video originals. The primary
// strategy shells out to a frame extractor; when that capability is absent a
// synthesized placeholder is produced instead, so the fallback never fails
// for availability reasons.
type videoGenerator struct {
	strg      port.Storage
	paths     *pathgen.Generator
	extractor FrameExtractor
}

// compile-time check: *videoGenerator must satisfy port.Generator
var _ port.Generator = (*videoGenerator)(nil)

// NewVideoGenerator constructs the video thumbnail generator.
func NewVideoGenerator(strg port.Storage, paths *pathgen.Generator, extractor FrameExtractor) port.Generator {
	return &videoGenerator{strg: strg, paths: paths, extractor: extractor}
}

func (g *videoGenerator) CanHandle(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/")
}

func (g *videoGenerator) Convert(ctx context.Context, m *model.Media, def conversion.Conversion) (string, error) {
	srcKey := g.paths.Path(m, "")
	destKey := g.paths.Path(m, def.Name)

	width, height := def.Width, def.Height
	if width == 0 {
		width = 640
	}
	if height == 0 {
		height = 480
	}

	format := strings.TrimPrefix(path.Ext(destKey), ".")

	var (
		data        []byte
		contentType string
		err         error
	)
	if g.extractor != nil && g.extractor.Available() {
		data, err = g.extractFrame(ctx, m, srcKey, format, width, height, def.Quality)
		if err != nil {
			return "", err
		}
		contentType = formatContentType(format)
	} else {
		log.Printf("frame extractor unavailable, synthesizing placeholder for media #%d", m.ID)
		data, contentType, err = placeholderFrame(width, height, def.Quality, format)
		if err != nil {
			return "", err
		}
	}

	if err := g.strg.SaveFile(ctx, m.Disk, destKey, bytes.NewReader(data), int64(len(data)), map[string]string{"Content-Type": contentType}); err != nil {
		return "", fmt.Errorf("failed to save conversion %q: %w", destKey, err)
	}
	return destKey, nil
}

// extractFrame materializes the original to a temp file, runs the extractor,
// and reads the produced frame back.
func (g *videoGenerator) extractFrame(ctx context.Context, m *model.Media, srcKey, format string, width, height, quality int) ([]byte, error) {
	rc, err := g.strg.GetFile(ctx, m.Disk, srcKey)
	if err != nil {
		if errors.Is(err, port.ErrObjectNotFound) {
			return nil, fmt.Errorf("source file %q not found: %w", srcKey, err)
		}
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	in, err := os.CreateTemp("", "video_in_*"+path.Ext(m.FileName))
	if err != nil {
		return nil, fmt.Errorf("could not create temp input file: %w", err)
	}
	defer removeTemp(in.Name())

	if _, err := io.Copy(in, rc); err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("failed to write temp input file: %w", err)
	}
	_ = in.Close()

	out, err := os.CreateTemp("", "video_frame_*."+format)
	if err != nil {
		return nil, fmt.Errorf("could not create temp output file: %w", err)
	}
	_ = out.Close()
	defer removeTemp(out.Name())

	if err := g.extractor.ExtractFrame(ctx, in.Name(), out.Name(), width, height, quality); err != nil {
		return nil, fmt.Errorf("frame extraction failed for media #%d: %w", m.ID, err)
	}

	data, err := os.ReadFile(out.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read extracted frame: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("frame extraction produced no output for media #%d", m.ID)
	}
	return data, nil
}

func removeTemp(name string) {
	if err := os.Remove(name); err != nil {
		log.Printf("failed to remove temp file %q: %v", name, err)
	}
}

func formatContentType(format string) string {
	switch format {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "image/webp"
	}
}
