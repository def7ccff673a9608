package urlgen

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
)

type fakeStorage struct {
	exists    bool
	existsErr error

	presignedURL string
	presignErr   error
}

func (f *fakeStorage) InitDisk(disk string) error { return nil }
func (f *fakeStorage) FileExists(ctx context.Context, disk, fileKey string) (bool, error) {
	return f.exists, f.existsErr
}
func (f *fakeStorage) StatFile(ctx context.Context, disk, fileKey string) (port.FileInfo, error) {
	return port.FileInfo{}, nil
}
func (f *fakeStorage) GetFile(ctx context.Context, disk, fileKey string) (io.ReadCloser, error) {
	return nil, port.ErrObjectNotFound
}
func (f *fakeStorage) SaveFile(ctx context.Context, disk, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	return nil
}
func (f *fakeStorage) RemoveFile(ctx context.Context, disk, fileKey string) error { return nil }
func (f *fakeStorage) ListPrefix(ctx context.Context, disk, prefix string) ([]string, error) {
	return nil, nil
}
func (f *fakeStorage) PublicURL(disk, fileKey string) string {
	return "http://cdn.local/" + disk + "/" + fileKey
}
func (f *fakeStorage) PresignedDownloadURL(ctx context.Context, disk, fileKey string, expiry time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return f.presignedURL, nil
}

func testMedia() *model.Media {
	return &model.Media{
		ID:             1,
		OwnerType:      "post",
		OwnerID:        7,
		CollectionName: "default",
		FileName:       "img.png",
		Disk:           "media",
	}
}

func TestURL_Original(t *testing.T) {
	g := New(pathgen.New(nil), &fakeStorage{})

	got := g.URL(context.Background(), testMedia(), "")
	if !strings.HasSuffix(got, "/media/post/7/default/1/img.png") {
		t.Errorf("unexpected URL %q", got)
	}
}

func TestURL_GeneratedConversion(t *testing.T) {
	m := testMedia()
	m.GeneratedConversions = model.ConversionStatus{"thumb": true}
	g := New(pathgen.New(nil), &fakeStorage{exists: true})

	got := g.URL(context.Background(), m, "thumb")
	if !strings.HasSuffix(got, "/img-thumb.webp") {
		t.Errorf("expected the conversion URL, got %q", got)
	}
}

func TestURL_MissingConversionFallsBackToOriginal(t *testing.T) {
	// no status entry, blob absent
	g := New(pathgen.New(nil), &fakeStorage{exists: false})

	got := g.URL(context.Background(), testMedia(), "thumb")
	if !strings.HasSuffix(got, "/img.png") {
		t.Errorf("expected fallback to the original, got %q", got)
	}
}

func TestURL_GeneratedStatusSkipsFallback(t *testing.T) {
	// status says generated: trust it even when the existence check fails
	m := testMedia()
	m.GeneratedConversions = model.ConversionStatus{"thumb": true}
	g := New(pathgen.New(nil), &fakeStorage{existsErr: errors.New("minio down")})

	got := g.URL(context.Background(), m, "thumb")
	if !strings.HasSuffix(got, "/img-thumb.webp") {
		t.Errorf("expected the conversion URL, got %q", got)
	}
}

func TestTemporaryURL_Presigned(t *testing.T) {
	g := New(pathgen.New(nil), &fakeStorage{presignedURL: "http://signed"})

	got := g.TemporaryURL(context.Background(), testMedia(), "", time.Minute)
	if got != "http://signed" {
		t.Errorf("expected the presigned URL, got %q", got)
	}
}

func TestTemporaryURL_FallsBackWhenUnsupported(t *testing.T) {
	g := New(pathgen.New(nil), &fakeStorage{presignErr: port.ErrPresignUnsupported})

	got := g.TemporaryURL(context.Background(), testMedia(), "", time.Minute)
	if !strings.HasSuffix(got, "/img.png") {
		t.Errorf("expected the regular URL, got %q", got)
	}
}
