package event

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
)

// Topics published by the library.
const (
	TopicMediaAdded          = "media.added"
	TopicMediaDeleted        = "media.deleted"
	TopicConversionCompleted = "media.conversion_completed"
)

// MediaAddedPayload mirrors the record at the moment ingest committed.
type MediaAddedPayload struct {
	MediaID        uint64    `json:"media_id"`
	ExternalID     string    `json:"external_id"`
	OwnerType      string    `json:"owner_type"`
	OwnerID        uint64    `json:"owner_id"`
	CollectionName string    `json:"collection_name"`
	FileName       string    `json:"file_name"`
	SizeBytes      int64     `json:"size_bytes"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// MediaDeletedPayload carries the deletion snapshot.
type MediaDeletedPayload struct {
	Snapshot   model.FileSnapshot `json:"snapshot"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// ConversionCompletedPayload announces one successful conversion.
type ConversionCompletedPayload struct {
	MediaID        uint64    `json:"media_id"`
	ConversionName string    `json:"conversion_name"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Notifier publishes library events over a watermill publisher. Publishing is
// fire-and-forget; failures are logged and swallowed.
type Notifier struct {
	pub message.Publisher
}

// compile-time check: *Notifier must satisfy port.Notifier
var _ port.Notifier = (*Notifier)(nil)

func NewNotifier(pub message.Publisher) *Notifier {
	return &Notifier{pub: pub}
}

// NewInProcessPubSub builds the default in-process pub/sub. Subscribers in the
// same process can attach to it to react to library events.
func NewInProcessPubSub() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
}

func (n *Notifier) MediaAdded(ctx context.Context, media *model.Media) {
	n.publish(TopicMediaAdded, MediaAddedPayload{
		MediaID:        media.ID,
		ExternalID:     media.ExternalID.String(),
		OwnerType:      media.OwnerType,
		OwnerID:        media.OwnerID,
		CollectionName: media.CollectionName,
		FileName:       media.FileName,
		SizeBytes:      media.SizeBytes,
		OccurredAt:     time.Now().UTC(),
	})
}

func (n *Notifier) MediaDeleted(ctx context.Context, snapshot model.FileSnapshot) {
	n.publish(TopicMediaDeleted, MediaDeletedPayload{
		Snapshot:   snapshot,
		OccurredAt: time.Now().UTC(),
	})
}

func (n *Notifier) ConversionCompleted(ctx context.Context, mediaID uint64, conversionName string) {
	n.publish(TopicConversionCompleted, ConversionCompletedPayload{
		MediaID:        mediaID,
		ConversionName: conversionName,
		OccurredAt:     time.Now().UTC(),
	})
}

func (n *Notifier) publish(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("could not marshal %q event: %v", topic, err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := n.pub.Publish(topic, msg); err != nil {
		log.Printf("could not publish %q event: %v", topic, err)
	}
}
