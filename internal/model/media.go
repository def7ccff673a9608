package model

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/lcabrel/medialib-go/internal/uuid"
)

// Media is one stored file attached to an owning entity, plus the status of
// its generated conversions. The owner is referenced polymorphically by
// (OwnerType, OwnerID); resolving the actual owner object is the caller's
// responsibility.
type Media struct {
	ID                   uint64           `json:"-"`
	OwnerType            string           `json:"owner_type"`
	OwnerID              uint64           `json:"owner_id"`
	CollectionName       string           `json:"collection_name"`
	Name                 string           `json:"name"`
	FileName             string           `json:"file_name"`
	MimeType             *string          `json:"mime_type"`
	Disk                 string           `json:"disk"`
	SizeBytes            int64            `json:"size_bytes"`
	CustomProperties     Properties       `json:"custom_properties"`
	GeneratedConversions ConversionStatus `json:"generated_conversions"`
	ResponsiveImages     StringList       `json:"responsive_images"`
	OrderColumn          *uint            `json:"order_column"`
	ContentHash          *string          `json:"-"`
	ExternalID           uuid.UUID        `json:"id"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
	DeletedAt            *time.Time       `json:"-"`
}

const DefaultCollection = "default"

// Extension returns the file name's extension without the leading dot.
func (m *Media) Extension() string {
	return strings.TrimPrefix(path.Ext(m.FileName), ".")
}

// HasGeneratedConversion reports whether the named conversion was generated
// successfully. A recorded failure and a never-attempted conversion both
// report false; inspect GeneratedConversions directly to tell them apart.
func (m *Media) HasGeneratedConversion(name string) bool {
	return m.GeneratedConversions[name]
}

// ConversionAttempted reports whether any outcome was recorded for the name.
func (m *Media) ConversionAttempted(name string) bool {
	_, ok := m.GeneratedConversions[name]
	return ok
}

// MarkConversionGenerated records the outcome of one conversion run,
// overwriting any previous outcome for the same name.
func (m *Media) MarkConversionGenerated(name string, generated bool) {
	if m.GeneratedConversions == nil {
		m.GeneratedConversions = ConversionStatus{}
	}
	m.GeneratedConversions[name] = generated
}

// Custom properties

func (m *Media) CustomProperty(name string) (any, bool) {
	v, ok := m.CustomProperties[name]
	return v, ok
}

func (m *Media) SetCustomProperty(name string, value any) {
	if m.CustomProperties == nil {
		m.CustomProperties = Properties{}
	}
	m.CustomProperties[name] = value
}

func (m *Media) ForgetCustomProperty(name string) {
	delete(m.CustomProperties, name)
}

func (m *Media) HasCustomProperty(name string) bool {
	_, ok := m.CustomProperties[name]
	return ok
}

// File type checks

func (m *Media) mime() string {
	if m.MimeType == nil {
		return ""
	}
	return *m.MimeType
}

func (m *Media) IsImage() bool { return strings.HasPrefix(m.mime(), "image/") }
func (m *Media) IsVideo() bool { return strings.HasPrefix(m.mime(), "video/") }
func (m *Media) IsAudio() bool { return strings.HasPrefix(m.mime(), "audio/") }
func (m *Media) IsPdf() bool   { return m.mime() == "application/pdf" }

var archiveMimeTypes = map[string]bool{
	"application/zip":              true,
	"application/x-rar-compressed": true,
	"application/x-7z-compressed":  true,
	"application/x-tar":            true,
	"application/gzip":             true,
}

func (m *Media) IsArchive() bool { return archiveMimeTypes[m.mime()] }

// TypeLabel buckets the media into a coarse category for listings.
func (m *Media) TypeLabel() string {
	switch {
	case m.IsImage():
		return "image"
	case m.IsVideo():
		return "video"
	case m.IsAudio():
		return "audio"
	case m.IsPdf():
		return "pdf"
	case m.IsArchive():
		return "archive"
	default:
		return "document"
	}
}

// HumanReadableSize formats SizeBytes with binary units.
func (m *Media) HumanReadableSize() string {
	const unit = 1024
	size := m.SizeBytes
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
