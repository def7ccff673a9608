package media

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/uuid"
)

type mockRepo struct {
	mediaRecord *model.Media
	byOwner     []model.Media
	softDeleted []model.Media
	hashMatch   *model.Media

	getErr        error
	createErr     error
	updateErr     error
	softDeleteErr error
	hardDeleteErr error
	orderErr      error
	listErr       error

	getCalled     bool
	created       *model.Media
	updated       *model.Media
	softDeletedID uint64
	hardDeletedID uint64
	orderedIDs    []uint64
	orders        []uint
}

func (m *mockRepo) Create(ctx context.Context, media *model.Media) error {
	m.created = media
	if m.createErr != nil {
		return m.createErr
	}
	if media.ID == 0 {
		media.ID = 42
	}
	return nil
}
func (m *mockRepo) Update(ctx context.Context, media *model.Media) error {
	m.updated = media
	return m.updateErr
}
func (m *mockRepo) GetByID(ctx context.Context, id uint64) (*model.Media, error) {
	m.getCalled = true
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.mediaRecord, nil
}
func (m *mockRepo) GetByExternalID(ctx context.Context, id uuid.UUID) (*model.Media, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.mediaRecord, nil
}
func (m *mockRepo) GetByContentHash(ctx context.Context, hash string) (*model.Media, error) {
	if m.hashMatch == nil {
		return nil, ErrNotFound
	}
	return m.hashMatch, nil
}
func (m *mockRepo) ListByOwner(ctx context.Context, ownerType string, ownerID uint64, collection string) ([]model.Media, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.byOwner, nil
}
func (m *mockRepo) Search(ctx context.Context, term string, limit int) ([]model.Media, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.byOwner, nil
}
func (m *mockRepo) UpdateOrder(ctx context.Context, id uint64, order uint) error {
	if m.orderErr != nil {
		return m.orderErr
	}
	m.orderedIDs = append(m.orderedIDs, id)
	m.orders = append(m.orders, order)
	return nil
}
func (m *mockRepo) SoftDelete(ctx context.Context, id uint64) error {
	if m.softDeleteErr != nil {
		return m.softDeleteErr
	}
	m.softDeletedID = id
	return nil
}
func (m *mockRepo) HardDelete(ctx context.Context, id uint64) error {
	if m.hardDeleteErr != nil {
		return m.hardDeleteErr
	}
	m.hardDeletedID = id
	return nil
}
func (m *mockRepo) ListIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	for _, rec := range m.byOwner {
		ids = append(ids, rec.ID)
	}
	return ids, m.listErr
}
func (m *mockRepo) ListSoftDeletedBefore(ctx context.Context, before time.Time) ([]model.Media, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.softDeleted, nil
}
func (m *mockRepo) Collections(ctx context.Context, ownerType string, ownerID uint64) ([]port.CollectionSummary, error) {
	return nil, m.listErr
}
func (m *mockRepo) TotalSize(ctx context.Context, ownerType string, ownerID uint64) (int64, error) {
	var total int64
	for _, rec := range m.byOwner {
		total += rec.SizeBytes
	}
	return total, m.listErr
}

type mockStorage struct {
	reader   io.Reader
	statInfo port.FileInfo
	exists   bool
	keys     []string

	existsErr error
	statErr   error
	getErr    error
	saveErr   error
	removeErr error
	listErr   error

	savedKeys   []string
	savedData   [][]byte
	removedKeys []string
	saveCalled  bool
}

func (m *mockStorage) InitDisk(disk string) error { return nil }
func (m *mockStorage) FileExists(ctx context.Context, disk, fileKey string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}
func (m *mockStorage) StatFile(ctx context.Context, disk, fileKey string) (port.FileInfo, error) {
	if m.statErr != nil {
		return port.FileInfo{}, m.statErr
	}
	return m.statInfo, nil
}
func (m *mockStorage) GetFile(ctx context.Context, disk, fileKey string) (io.ReadCloser, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.reader != nil {
		return io.NopCloser(m.reader), nil
	}
	return io.NopCloser(bytes.NewReader([]byte("dummy"))), nil
}
func (m *mockStorage) SaveFile(ctx context.Context, disk, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.saveCalled = true
	if m.saveErr != nil {
		return m.saveErr
	}
	data, _ := io.ReadAll(reader)
	m.savedKeys = append(m.savedKeys, fileKey)
	m.savedData = append(m.savedData, data)
	return nil
}
func (m *mockStorage) RemoveFile(ctx context.Context, disk, fileKey string) error {
	m.removedKeys = append(m.removedKeys, fileKey)
	return m.removeErr
}
func (m *mockStorage) ListPrefix(ctx context.Context, disk, prefix string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.keys, nil
}
func (m *mockStorage) PublicURL(disk, fileKey string) string {
	return "http://storage.local/" + disk + "/" + fileKey
}
func (m *mockStorage) PresignedDownloadURL(ctx context.Context, disk, fileKey string, expiry time.Duration) (string, error) {
	return "", port.ErrPresignUnsupported
}

type mockDispatcher struct {
	conversionsFor []uint64
	removalsFor    []model.FileSnapshot

	conversionsErr error
	removalsErr    error
}

func (m *mockDispatcher) EnqueueGenerateConversions(ctx context.Context, mediaID uint64) error {
	if m.conversionsErr != nil {
		return m.conversionsErr
	}
	m.conversionsFor = append(m.conversionsFor, mediaID)
	return nil
}
func (m *mockDispatcher) EnqueueRemoveFiles(ctx context.Context, snapshot model.FileSnapshot) error {
	if m.removalsErr != nil {
		return m.removalsErr
	}
	m.removalsFor = append(m.removalsFor, snapshot)
	return nil
}

type mockNotifier struct {
	added       []*model.Media
	deleted     []model.FileSnapshot
	conversions []string
}

func (m *mockNotifier) MediaAdded(ctx context.Context, media *model.Media) {
	m.added = append(m.added, media)
}
func (m *mockNotifier) MediaDeleted(ctx context.Context, snapshot model.FileSnapshot) {
	m.deleted = append(m.deleted, snapshot)
}
func (m *mockNotifier) ConversionCompleted(ctx context.Context, mediaID uint64, conversionName string) {
	m.conversions = append(m.conversions, conversionName)
}

type mockCache struct {
	entry []byte

	getErr error
	delErr error

	getCalled bool
	setCalled bool
	delCalled bool
}

func (c *mockCache) GetMediaDetails(ctx context.Context, id uint64) ([]byte, error) {
	c.getCalled = true
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entry, nil
}
func (c *mockCache) SetMediaDetails(ctx context.Context, id uint64, data []byte, ttl time.Duration) {
	c.setCalled = true
	c.entry = data
}
func (c *mockCache) DeleteMediaDetails(ctx context.Context, id uint64) error {
	c.delCalled = true
	return c.delErr
}

type mockEngine struct {
	handled  bool
	failFor  map[string]bool
	convErr  error
	ranNames []string
}

func (e *mockEngine) CanHandle(mimeType string) bool { return e.handled }
func (e *mockEngine) Convert(ctx context.Context, media *model.Media, def conversion.Conversion) (string, error) {
	e.ranNames = append(e.ranNames, def.Name)
	if e.failFor[def.Name] {
		return "", e.convErr
	}
	return "some/key-" + def.Name + ".webp", nil
}

type mockRemover struct {
	snapshots []model.FileSnapshot
	err       error
}

func (r *mockRemover) RemoveFiles(ctx context.Context, snapshot model.FileSnapshot) error {
	r.snapshots = append(r.snapshots, snapshot)
	return r.err
}
