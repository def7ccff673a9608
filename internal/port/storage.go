package port

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage defines blob operations over named logical disks. A disk resolves to
// a bucket or location inside the adapter.
type Storage interface {
	InitDisk(disk string) error
	FileExists(ctx context.Context, disk, fileKey string) (bool, error)
	StatFile(ctx context.Context, disk, fileKey string) (FileInfo, error)
	GetFile(ctx context.Context, disk, fileKey string) (io.ReadCloser, error)
	SaveFile(ctx context.Context, disk, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error
	RemoveFile(ctx context.Context, disk, fileKey string) error
	ListPrefix(ctx context.Context, disk, prefix string) ([]string, error)
	PublicURL(disk, fileKey string) string
	PresignedDownloadURL(ctx context.Context, disk, fileKey string, expiry time.Duration) (string, error)
}
