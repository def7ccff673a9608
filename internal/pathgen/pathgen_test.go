package pathgen

import (
	"testing"

	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/model"
)

func testMedia() *model.Media {
	return &model.Media{
		ID:             17,
		OwnerType:      "App\\Models\\BlogPost",
		OwnerID:        42,
		CollectionName: "gallery",
		FileName:       "photo.jpg",
	}
}

func TestPath_Original(t *testing.T) {
	g := New(nil)

	got := g.Path(testMedia(), "")
	want := "BlogPost/42/gallery/17/photo.jpg"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPath_ConversionUsesWebpForRasterImages(t *testing.T) {
	g := New(nil)

	got := g.Path(testMedia(), "thumb")
	want := "BlogPost/42/gallery/17/photo-thumb.webp"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPath_ConversionKeepsNonRasterExtension(t *testing.T) {
	g := New(nil)
	m := testMedia()
	m.FileName = "clip.mp4"

	got := g.Path(m, "thumb")
	want := "BlogPost/42/gallery/17/clip-thumb.mp4"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPath_ConversionHonoursConfiguredFormat(t *testing.T) {
	g := New([]conversion.Conversion{conversion.New("poster", conversion.Format("jpg"))})
	m := testMedia()
	m.FileName = "clip.mp4"

	got := g.Path(m, "poster")
	want := "BlogPost/42/gallery/17/clip-poster.jpg"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPath_DistinctMediaGetDistinctKeys(t *testing.T) {
	g := New(nil)
	a := testMedia()
	b := testMedia()
	b.ID = 18

	// Two records sharing owner, collection and file name still key apart
	// because the media id is a path segment.
	if g.Path(a, "") == g.Path(b, "") {
		t.Errorf("expected distinct original keys, both %q", g.Path(a, ""))
	}
	if g.Path(a, "thumb") == g.Path(b, "thumb") {
		t.Errorf("expected distinct conversion keys, both %q", g.Path(a, "thumb"))
	}
}

func TestDir(t *testing.T) {
	g := New(nil)

	got := g.Dir(testMedia())
	want := "BlogPost/42/gallery/17"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPath_SanitizesOwnerType(t *testing.T) {
	g := New(nil)
	m := testMedia()
	m.OwnerType = "weird owner/type!"

	got := g.Path(m, "")
	want := "type_/42/gallery/17/photo.jpg"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSanitizeDirectoryName(t *testing.T) {
	cases := map[string]string{
		"BlogPost":     "BlogPost",
		"blog post":    "blog_post",
		"a/b":          "a_b",
		"héllo":        "h_llo",
		"under_score-": "under_score-",
	}
	for in, want := range cases {
		if got := SanitizeDirectoryName(in); got != want {
			t.Errorf("SanitizeDirectoryName(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":     "photo.jpg",
		"my photo!.jpg": "myphoto.jpg",
		"a b c().png":   "abc.png",
		"no-ext":        "no-ext",
	}
	for in, want := range cases {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q): expected %q, got %q", in, want, got)
		}
	}
}
