package optimiser

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"
)

type stubWebPEncoder struct {
	out []byte
	err error
}

func (s stubWebPEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	if s.err != nil {
		return s.err
	}
	_, err := w.Write(s.out)
	return err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestOptimise_UnknownFormatPassesThrough(t *testing.T) {
	o := NewOptimiser(stubWebPEncoder{})
	in := []byte("not an image at all")

	out, err := o.Optimise("gif", in, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Error("expected unknown formats to pass through untouched")
	}
}

func TestOptimise_KeepsOriginalWhenReencodeIsBigger(t *testing.T) {
	in := pngBytes(t, 4, 4)
	bigger := make([]byte, len(in)+100)
	o := NewOptimiser(stubWebPEncoder{out: bigger})

	out, err := o.Optimise("webp", in, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Error("expected the original bytes when re-encoding grows the file")
	}
}

func TestOptimise_UsesSmallerReencode(t *testing.T) {
	in := pngBytes(t, 16, 16)
	tiny := []byte{1, 2, 3}
	o := NewOptimiser(stubWebPEncoder{out: tiny})

	out, err := o.Optimise("webp", in, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, tiny) {
		t.Error("expected the smaller re-encoded bytes to win")
	}
}

func TestOptimise_PngRecompress(t *testing.T) {
	in := pngBytes(t, 8, 8)
	o := NewOptimiser(stubWebPEncoder{})

	out, err := o.Optimise("png", in, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 0 || len(out) > len(in) {
		t.Errorf("expected recompressed bytes no larger than the input, got %d > %d", len(out), len(in))
	}
}

func TestOptimise_UndecodableInputErrors(t *testing.T) {
	o := NewOptimiser(stubWebPEncoder{})

	if _, err := o.Optimise("jpeg", []byte("garbage"), 80); err == nil {
		t.Error("expected an error for undecodable input")
	}
}
