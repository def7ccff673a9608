package converter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// FrameExtractor pulls a still frame out of a video file on disk.
type FrameExtractor interface {
	// Available reports whether the extractor can run on this host.
	Available() bool
	// ExtractFrame writes a single frame of inPath to outPath, scaled to
	// width x height. Quality is a 1-100 scale.
	ExtractFrame(ctx context.Context, inPath, outPath string, width, height, quality int) error
}

// FFmpeg extracts frames by shelling out to the ffmpeg binary.
type FFmpeg struct {
	binary string
}

var _ FrameExtractor = (*FFmpeg)(nil)

// NewFFmpeg locates the extractor binary. An empty path falls back to
// searching PATH for "ffmpeg".
func NewFFmpeg(binary string) *FFmpeg {
	if binary == "" {
		binary = "ffmpeg"
	}
	resolved, err := exec.LookPath(binary)
	if err != nil {
		return &FFmpeg{}
	}
	return &FFmpeg{binary: resolved}
}

func (f *FFmpeg) Available() bool {
	return f.binary != ""
}

func (f *FFmpeg) ExtractFrame(ctx context.Context, inPath, outPath string, width, height, quality int) error {
	if !f.Available() {
		return fmt.Errorf("ffmpeg binary not found")
	}

	// Seek to the 1s mark so the frame is past any initial black screen.
	args := []string{
		"-y",
		"-ss", "00:00:01",
		"-i", inPath,
		"-vframes", "1",
		"-vf", fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", width, height),
		"-q:v", strconv.Itoa(ffmpegQScale(quality)),
		outPath,
	}

	cmd := exec.CommandContext(ctx, f.binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, string(out))
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("ffmpeg produced no output: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("ffmpeg produced an empty frame")
	}
	return nil
}

// ffmpegQScale maps a 1-100 quality onto ffmpeg's -q:v range, where 2 is best
// and 31 is worst.
func ffmpegQScale(quality int) int {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	return 31 - (quality-1)*29/99
}
