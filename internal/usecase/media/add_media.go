package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/uuid"
)

// AddMediaOptions tunes the ingest policy.
type AddMediaOptions struct {
	DefaultDisk      string
	MaxFileSize      int64
	AllowedMimeTypes map[string]bool
	// EnforceUniqueContent rejects a file whose hash already exists for some
	// live record. Off by default: the hash is always recorded either way.
	EnforceUniqueContent bool
	// DownloadTimeout bounds URL ingests. Zero means 30s.
	DownloadTimeout time.Duration
}

type addMediaSrv struct {
	repo       port.MediaRepository
	strg       port.Storage
	paths      *pathgen.Generator
	dispatcher port.TaskDispatcher
	notifier   port.Notifier
	genUUID    func() uuid.UUID
	httpClient *http.Client
	opts       AddMediaOptions
}

// compile-time check: *addMediaSrv must satisfy port.MediaAdder
var _ port.MediaAdder = (*addMediaSrv)(nil)

// NewMediaAdder constructs the ingest service.
func NewMediaAdder(
	repo port.MediaRepository,
	strg port.Storage,
	paths *pathgen.Generator,
	dispatcher port.TaskDispatcher,
	notifier port.Notifier,
	genUUID func() uuid.UUID,
	opts AddMediaOptions,
) port.MediaAdder {
	if opts.AllowedMimeTypes == nil {
		opts.AllowedMimeTypes = DefaultAllowedMimeTypes
	}
	if opts.DownloadTimeout == 0 {
		opts.DownloadTimeout = 30 * time.Second
	}
	return &addMediaSrv{
		repo:       repo,
		strg:       strg,
		paths:      paths,
		dispatcher: dispatcher,
		notifier:   notifier,
		genUUID:    genUUID,
		httpClient: &http.Client{Timeout: opts.DownloadTimeout},
		opts:       opts,
	}
}

// AddMedia runs the full ingest: materialize the source, validate it, record
// it, store the bytes, then schedule conversions.
func (s *addMediaSrv) AddMedia(ctx context.Context, in port.AddMediaInput) (*model.Media, error) {
	data, fileName, err := s.materialize(ctx, in.Source)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyFile, fileName)
	}
	if s.opts.MaxFileSize > 0 && int64(len(data)) > s.opts.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, len(data), s.opts.MaxFileSize)
	}

	mimeType := mimetype.Detect(data).String()
	// strip optional parameters like "; charset=utf-8"
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !s.opts.AllowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w: %q", ErrMimeTypeNotAllowed, mimeType)
	}

	fileName = s.safeFileName(fileName, data)

	sum := sha1.Sum(data)
	hash := hex.EncodeToString(sum[:])

	if s.opts.EnforceUniqueContent {
		if existing, err := s.repo.GetByContentHash(ctx, hash); err == nil && existing != nil {
			return nil, fmt.Errorf("%w: already stored as media #%d", ErrDuplicateContent, existing.ID)
		}
	}

	disk := in.Disk
	if disk == "" {
		disk = s.opts.DefaultDisk
	}
	collection := in.Collection
	if collection == "" {
		collection = model.DefaultCollection
	}
	name := in.Name
	if name == "" {
		name = strings.TrimSuffix(fileName, path.Ext(fileName))
	}

	order, err := s.nextOrder(ctx, in.OwnerType, in.OwnerID, collection)
	if err != nil {
		return nil, fmt.Errorf("could not resolve order for new media: %w", err)
	}

	m := &model.Media{
		OwnerType:            in.OwnerType,
		OwnerID:              in.OwnerID,
		CollectionName:       collection,
		Name:                 name,
		FileName:             fileName,
		MimeType:             &mimeType,
		Disk:                 disk,
		SizeBytes:            int64(len(data)),
		CustomProperties:     in.Properties,
		GeneratedConversions: model.ConversionStatus{},
		ResponsiveImages:     model.StringList{},
		OrderColumn:          &order,
		ContentHash:          &hash,
		ExternalID:           s.genUUID(),
	}
	if m.CustomProperties == nil {
		m.CustomProperties = model.Properties{}
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed creating media record: %w", err)
	}

	key := s.paths.Path(m, "")
	if err := s.strg.SaveFile(ctx, disk, key, bytes.NewReader(data), int64(len(data)), map[string]string{"Content-Type": mimeType}); err != nil {
		// The record is useless without its bytes; roll it back.
		if delErr := s.repo.HardDelete(ctx, m.ID); delErr != nil {
			log.Printf("rollback of media #%d after failed store: %v", m.ID, delErr)
		}
		return nil, fmt.Errorf("failed storing file %q: %w", key, err)
	}

	if err := s.dispatcher.EnqueueGenerateConversions(ctx, m.ID); err != nil {
		// The file and record are in place; conversions can be regenerated.
		log.Printf("failed scheduling conversions for media #%d: %v", m.ID, err)
	}

	s.notifier.MediaAdded(ctx, m)

	return m, nil
}

// materialize turns the source into in-memory bytes plus a candidate filename.
func (s *addMediaSrv) materialize(ctx context.Context, src port.Source) ([]byte, string, error) {
	switch src.Kind {
	case port.SourceUpload:
		if src.Reader == nil {
			return nil, "", fmt.Errorf("%w: upload source without reader", ErrInvalidSource)
		}
		data, err := io.ReadAll(s.limited(src.Reader))
		if err != nil {
			return nil, "", fmt.Errorf("failed reading upload: %w", err)
		}
		return data, src.FileName, nil

	case port.SourceURL:
		return s.download(ctx, src.URL)

	case port.SourceBytes:
		return src.Bytes, src.FileName, nil

	default:
		return nil, "", fmt.Errorf("%w: unknown source kind %d", ErrInvalidSource, src.Kind)
	}
}

func (s *addMediaSrv) download(ctx context.Context, rawURL string) ([]byte, string, error) {
	if rawURL == "" {
		return nil, "", fmt.Errorf("%w: empty URL", ErrInvalidSource)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: unexpected status %d for %q", ErrDownloadFailed, resp.StatusCode, rawURL)
	}

	data, err := io.ReadAll(s.limited(resp.Body))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	fileName := path.Base(req.URL.Path)
	if fileName == "/" || fileName == "." {
		fileName = ""
	}
	return data, fileName, nil
}

// limited caps reads one byte past the max size so oversize inputs are caught
// by the length check without buffering unbounded data.
func (s *addMediaSrv) limited(r io.Reader) io.Reader {
	if s.opts.MaxFileSize <= 0 {
		return r
	}
	return io.LimitReader(r, s.opts.MaxFileSize+1)
}

// safeFileName sanitizes the candidate name and guarantees a usable base name
// and extension, deriving them from the content when missing.
func (s *addMediaSrv) safeFileName(fileName string, data []byte) string {
	fileName = pathgen.SanitizeFileName(path.Base(fileName))

	ext := path.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	if base == "" {
		base = "file"
	}
	if ext == "" {
		ext = mimetype.Detect(data).Extension()
	}
	return base + ext
}

func (s *addMediaSrv) nextOrder(ctx context.Context, ownerType string, ownerID uint64, collection string) (uint, error) {
	siblings, err := s.repo.ListByOwner(ctx, ownerType, ownerID, collection)
	if err != nil {
		return 0, err
	}

	var highest uint
	for _, sib := range siblings {
		if sib.OrderColumn != nil && *sib.OrderColumn > highest {
			highest = *sib.OrderColumn
		}
	}
	return highest + 1, nil
}
