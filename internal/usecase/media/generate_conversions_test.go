package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/model"
)

type stubProvider struct {
	defs []conversion.Conversion
}

func (p *stubProvider) ConversionsFor(ownerType string) []conversion.Conversion { return p.defs }

func imageMedia(id uint64) *model.Media {
	mime := "image/png"
	return &model.Media{
		ID:        id,
		OwnerType: "post",
		OwnerID:   7,
		FileName:  "img.png",
		Disk:      "media",
		MimeType:  &mime,
	}
}

func TestGenerateConversions_MediaGone(t *testing.T) {
	repo := &mockRepo{getErr: ErrNotFound}
	engine := &mockEngine{handled: true}
	svc := NewConversionGenerator(repo, engine, &stubProvider{}, &mockCache{}, &mockNotifier{})

	if err := svc.GenerateConversions(context.Background(), 1); err != nil {
		t.Fatalf("expected deleted media to be skipped, got %v", err)
	}
	if len(engine.ranNames) != 0 {
		t.Error("expected no conversion to run")
	}
}

func TestGenerateConversions_UnhandledMimeType(t *testing.T) {
	repo := &mockRepo{mediaRecord: imageMedia(1)}
	engine := &mockEngine{handled: false}
	provider := &stubProvider{defs: []conversion.Conversion{conversion.New("thumb")}}
	svc := NewConversionGenerator(repo, engine, provider, &mockCache{}, &mockNotifier{})

	if err := svc.GenerateConversions(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updated != nil {
		t.Error("expected no status to be recorded for unhandled types")
	}
}

func TestGenerateConversions_AllSucceed(t *testing.T) {
	m := imageMedia(1)
	repo := &mockRepo{mediaRecord: m}
	engine := &mockEngine{handled: true}
	provider := &stubProvider{defs: []conversion.Conversion{conversion.New("thumb"), conversion.New("large")}}
	cache := &mockCache{}
	notifier := &mockNotifier{}
	svc := NewConversionGenerator(repo, engine, provider, cache, notifier)

	if err := svc.GenerateConversions(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !m.HasGeneratedConversion("thumb") || !m.HasGeneratedConversion("large") {
		t.Error("expected both conversions marked generated")
	}
	if len(notifier.conversions) != 2 {
		t.Errorf("expected 2 completion notifications, got %d", len(notifier.conversions))
	}
	if !cache.delCalled {
		t.Error("expected cache invalidation after the run")
	}
}

func TestGenerateConversions_PartialFailure(t *testing.T) {
	m := imageMedia(1)
	repo := &mockRepo{mediaRecord: m}
	engine := &mockEngine{
		handled: true,
		failFor: map[string]bool{"large": true},
		convErr: errors.New("decode fail"),
	}
	provider := &stubProvider{defs: []conversion.Conversion{conversion.New("thumb"), conversion.New("large")}}
	notifier := &mockNotifier{}
	svc := NewConversionGenerator(repo, engine, provider, &mockCache{}, notifier)

	// A broken conversion is absorbed into the status map; the run itself
	// completes so the queue does not re-run what already succeeded.
	if err := svc.GenerateConversions(context.Background(), 1); err != nil {
		t.Fatalf("expected the partial-failure run to complete, got %v", err)
	}

	if !m.HasGeneratedConversion("thumb") {
		t.Error("expected thumb to be recorded as generated")
	}
	if m.HasGeneratedConversion("large") {
		t.Error("expected large to be recorded as failed")
	}
	if !m.ConversionAttempted("large") {
		t.Error("expected the failed outcome to be recorded, not absent")
	}
	if len(notifier.conversions) != 1 || notifier.conversions[0] != "thumb" {
		t.Errorf("expected one completion notification for thumb, got %v", notifier.conversions)
	}
}

func TestGenerateConversions_PersistError(t *testing.T) {
	repo := &mockRepo{mediaRecord: imageMedia(1), updateErr: errors.New("db fail")}
	engine := &mockEngine{handled: true}
	provider := &stubProvider{defs: []conversion.Conversion{conversion.New("thumb")}}
	svc := NewConversionGenerator(repo, engine, provider, &mockCache{}, &mockNotifier{})

	err := svc.GenerateConversions(context.Background(), 1)
	if err == nil || !strings.Contains(err.Error(), "db fail") {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
