package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage adapts a MinIO/S3 endpoint to the Storage port. Each logical
// disk maps to one bucket.
type MinioStorage struct {
	client   minioClient
	endpoint string
	useSSL   bool
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

func NewMinioStorage(endpoint, accessKey, secretKey string, useSSL bool) (*MinioStorage, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &MinioStorage{client: client, endpoint: endpoint, useSSL: useSSL}, nil
}

// InitDisk creates the backing bucket when missing.
func (s *MinioStorage) InitDisk(disk string) error {
	ok, err := s.client.BucketExists(context.Background(), disk)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		log.Printf("bucket %q does not exist, creating it...", disk)
		if err := s.client.MakeBucket(context.Background(), disk, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func (s *MinioStorage) FileExists(ctx context.Context, disk, fileKey string) (bool, error) {
	_, err := s.StatFile(ctx, disk, fileKey)
	if errors.Is(err, port.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MinioStorage) StatFile(ctx context.Context, disk, fileKey string) (port.FileInfo, error) {
	info, err := s.client.StatObject(ctx, disk, fileKey, minio.StatObjectOptions{})
	if err != nil {
		return port.FileInfo{}, mapMinioErr(err)
	}
	return port.FileInfo{
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
	}, nil
}

func (s *MinioStorage) GetFile(ctx context.Context, disk, fileKey string) (io.ReadCloser, error) {
	log.Printf("getting file %q from disk %q...", fileKey, disk)

	obj, err := s.client.GetObject(ctx, disk, fileKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	// GetObject is lazy: surface missing keys now rather than on first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, mapMinioErr(err)
	}
	return obj, nil
}

func (s *MinioStorage) SaveFile(ctx context.Context, disk, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	log.Printf("saving file %q onto disk %q...", fileKey, disk)

	putOpts := minio.PutObjectOptions{}
	if ct := opts["Content-Type"]; ct != "" {
		putOpts.ContentType = ct
	}

	_, err := s.client.PutObject(ctx, disk, fileKey, reader, fileSize, putOpts)
	if err != nil {
		return mapMinioErr(err)
	}
	return nil
}

// RemoveFile deletes the object. Removing a missing key is a no-op.
func (s *MinioStorage) RemoveFile(ctx context.Context, disk, fileKey string) error {
	log.Printf("removing file %q from disk %q...", fileKey, disk)

	err := s.client.RemoveObject(ctx, disk, fileKey, minio.RemoveObjectOptions{})
	return mapMinioErr(err)
}

func (s *MinioStorage) ListPrefix(ctx context.Context, disk, prefix string) ([]string, error) {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	var keys []string
	for obj := range s.client.ListObjects(ctx, disk, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, mapMinioErr(obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// PublicURL builds the direct object URL; it does not check existence.
func (s *MinioStorage) PublicURL(disk, fileKey string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, disk, fileKey)
}

func (s *MinioStorage) PresignedDownloadURL(ctx context.Context, disk, fileKey string, expiry time.Duration) (string, error) {
	presignedURL, err := s.client.PresignedGetObject(ctx, disk, fileKey, expiry, url.Values{})
	if err != nil {
		return "", mapMinioErr(err)
	}
	return presignedURL.String(), nil
}
