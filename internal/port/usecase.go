package port

import (
	"context"
	"io"
	"time"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/uuid"
)

// SourceKind discriminates the three ways a file can enter the library.
type SourceKind int

const (
	SourceUpload SourceKind = iota
	SourceURL
	SourceBytes
)

// Source is the input file of an ingest: an upload stream with a known
// filename and content type, a remote URL to fetch, or raw bytes.
type Source struct {
	Kind     SourceKind
	Reader   io.Reader
	FileName string
	MimeType string
	URL      string
	Bytes    []byte
}

func UploadSource(r io.Reader, fileName, mimeType string) Source {
	return Source{Kind: SourceUpload, Reader: r, FileName: fileName, MimeType: mimeType}
}

func URLSource(url string) Source {
	return Source{Kind: SourceURL, URL: url}
}

func BytesSource(content []byte, fileName string) Source {
	return Source{Kind: SourceBytes, Bytes: content, FileName: fileName}
}

// MediaAdder validates, stores, and records a new file.
type MediaAdder interface {
	AddMedia(ctx context.Context, in AddMediaInput) (*model.Media, error)
}
type AddMediaInput struct {
	Source     Source
	OwnerType  string
	OwnerID    uint64
	Collection string
	Name       string
	Properties model.Properties
	Disk       string // optional override of the configured default
}

// ConversionGenerator runs every applicable conversion for one media,
// recording each outcome independently.
type ConversionGenerator interface {
	GenerateConversions(ctx context.Context, mediaID uint64) error
}

// FileRemover deletes the blobs named in a snapshot, best-effort.
type FileRemover interface {
	RemoveFiles(ctx context.Context, snapshot model.FileSnapshot) error
}

// MediaDeleter soft-deletes records and schedules blob removal.
type MediaDeleter interface {
	DeleteMedia(ctx context.Context, id uint64) error
	BulkDelete(ctx context.Context, ids []uint64) error
}

// MediaPurger hard-deletes soft-deleted rows older than the cutoff and
// returns how many were removed.
type MediaPurger interface {
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// MediaGetter resolves a media with its servable URLs.
type MediaGetter interface {
	GetMedia(ctx context.Context, id uint64) (GetMediaOutput, error)
	GetMediaByExternalID(ctx context.Context, id uuid.UUID) (GetMediaOutput, error)
}
type GetMediaOutput struct {
	Media          model.Media       `json:"media"`
	URL            string            `json:"url"`
	ConversionURLs map[string]string `json:"conversion_urls"`
}

// MediaLister queries records by owner, collection, or free text.
type MediaLister interface {
	ListByOwner(ctx context.Context, ownerType string, ownerID uint64, collection string) ([]model.Media, error)
	Search(ctx context.Context, term string, limit int) ([]model.Media, error)
	Collections(ctx context.Context, ownerType string, ownerID uint64) ([]CollectionSummary, error)
}

// MediaUpdater applies metadata changes to one record.
type MediaUpdater interface {
	UpdateMedia(ctx context.Context, in UpdateMediaInput) (*model.Media, error)
}
type UpdateMediaInput struct {
	ID         uint64
	Name       *string
	Collection *string
	Order      *uint
	// Properties are merged into the record's custom properties; a nil value
	// removes the key.
	Properties map[string]any
}

// CollectionReorderer rewrites order columns for one owner collection.
type CollectionReorderer interface {
	Reorder(ctx context.Context, in ReorderInput) error
}
type ReorderInput struct {
	OwnerType  string
	OwnerID    uint64
	Collection string
	OrderedIDs []uint64
}

// ConversionRegenerator re-runs every configured conversion for a media.
type ConversionRegenerator interface {
	RegenerateConversions(ctx context.Context, mediaID uint64) error
}
