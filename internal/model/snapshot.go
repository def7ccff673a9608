package model

import "github.com/lcabrel/medialib-go/internal/uuid"

// FileSnapshot captures the fields needed to locate a media's blobs after the
// record is gone. The deletion job operates on this value, never on a live
// record.
type FileSnapshot struct {
	ID                   uint64           `json:"id"`
	ExternalID           uuid.UUID        `json:"external_id"`
	OwnerType            string           `json:"owner_type"`
	OwnerID              uint64           `json:"owner_id"`
	CollectionName       string           `json:"collection_name"`
	FileName             string           `json:"file_name"`
	Disk                 string           `json:"disk"`
	GeneratedConversions ConversionStatus `json:"generated_conversions"`
}

// Snapshot freezes the identifying fields of a media record.
func (m *Media) Snapshot() FileSnapshot {
	status := make(ConversionStatus, len(m.GeneratedConversions))
	for name, ok := range m.GeneratedConversions {
		status[name] = ok
	}
	return FileSnapshot{
		ID:                   m.ID,
		ExternalID:           m.ExternalID,
		OwnerType:            m.OwnerType,
		OwnerID:              m.OwnerID,
		CollectionName:       m.CollectionName,
		FileName:             m.FileName,
		Disk:                 m.Disk,
		GeneratedConversions: status,
	}
}

// Media rebuilds a transient record from the snapshot, enough for path
// derivation. It must not be persisted.
func (s FileSnapshot) Media() *Media {
	return &Media{
		ID:                   s.ID,
		ExternalID:           s.ExternalID,
		OwnerType:            s.OwnerType,
		OwnerID:              s.OwnerID,
		CollectionName:       s.CollectionName,
		FileName:             s.FileName,
		Disk:                 s.Disk,
		GeneratedConversions: s.GeneratedConversions,
	}
}
