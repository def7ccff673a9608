package media

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/urlgen"
)

func newGetter(repo *mockRepo, strg *mockStorage, provider conversion.Provider, cache *mockCache) port.MediaGetter {
	paths := pathgen.New(nil)
	return NewMediaGetter(repo, urlgen.New(paths, strg), provider, cache)
}

func TestGetMedia_NotFound(t *testing.T) {
	repo := &mockRepo{getErr: ErrNotFound}
	svc := newGetter(repo, &mockStorage{}, &stubProvider{}, &mockCache{})

	if _, err := svc.GetMedia(context.Background(), 1); err == nil {
		t.Fatal("expected an error")
	}
}

func TestGetMedia_CacheHit(t *testing.T) {
	cached, _ := json.Marshal(port.GetMediaOutput{URL: "http://cached"})
	repo := &mockRepo{}
	cache := &mockCache{entry: cached}
	svc := newGetter(repo, &mockStorage{}, &stubProvider{}, cache)

	out, err := svc.GetMedia(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.URL != "http://cached" {
		t.Errorf("expected the cached payload, got %q", out.URL)
	}
	if repo.getCalled {
		t.Error("expected the repository to be skipped on cache hit")
	}
}

func TestGetMedia_BuildsURLs(t *testing.T) {
	m := imageMedia(1)
	m.GeneratedConversions = model.ConversionStatus{"thumb": true}
	repo := &mockRepo{mediaRecord: m}
	provider := &stubProvider{defs: []conversion.Conversion{conversion.New("thumb")}}
	cache := &mockCache{}
	svc := newGetter(repo, &mockStorage{}, provider, cache)

	out, err := svc.GetMedia(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(out.URL, "/img.png") {
		t.Errorf("expected the original URL, got %q", out.URL)
	}
	if !strings.HasSuffix(out.ConversionURLs["thumb"], "/img-thumb.webp") {
		t.Errorf("expected the thumb URL, got %q", out.ConversionURLs["thumb"])
	}
	if !cache.setCalled {
		t.Error("expected the details to be cached")
	}
}

func TestGetMedia_MissingConversionFallsBack(t *testing.T) {
	m := imageMedia(1)
	// never attempted: no entry in the status map, blob absent
	repo := &mockRepo{mediaRecord: m}
	provider := &stubProvider{defs: []conversion.Conversion{conversion.New("thumb")}}
	svc := newGetter(repo, &mockStorage{exists: false}, provider, &mockCache{})

	out, err := svc.GetMedia(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(out.ConversionURLs["thumb"], "/img.png") {
		t.Errorf("expected fallback to the original, got %q", out.ConversionURLs["thumb"])
	}
}
