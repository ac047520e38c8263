package optimize

import (
	"net/url"
	"testing"
)

const sampleUnsplash = "https://images.unsplash.com/photo-12345?ixid=abc&w=5000"

func TestRewriteRemoteURLJPEG(t *testing.T) {
	preset := PresetFor(PresetMedium)
	got, err := RewriteRemoteURL(sampleUnsplash, preset, FormatJPEG)
	if err != nil {
		t.Fatalf("RewriteRemoteURL: %v", err)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse rewritten url: %v", err)
	}
	q := u.Query()
	checks := map[string]string{
		"w":    "600",
		"h":    "400",
		"fit":  "crop",
		"crop": "faces,center",
		"auto": "format",
		"q":    "80",
	}
	for k, want := range checks {
		if q.Get(k) != want {
			t.Fatalf("query %s = %q, want %q", k, q.Get(k), want)
		}
	}
	if q.Has("fm") {
		t.Fatalf("jpeg rewrite must not set fm, got %q", q.Get("fm"))
	}
	if q.Has("ixid") {
		t.Fatalf("original query params must be replaced, ixid survived")
	}
}

func TestRewriteRemoteURLWebPSetsFormatAndQuality(t *testing.T) {
	preset := PresetFor(PresetMedium)
	got, err := RewriteRemoteURL(sampleUnsplash, preset, FormatWebP)
	if err != nil {
		t.Fatalf("RewriteRemoteURL: %v", err)
	}
	q, _ := url.Parse(got)
	if q.Query().Get("fm") != "webp" {
		t.Fatalf("fm = %q, want webp", q.Query().Get("fm"))
	}
	if q.Query().Get("q") != "70" {
		t.Fatalf("q = %q, want webp quality 70", q.Query().Get("q"))
	}
}

func TestRewriteRemoteURLRejectsOtherHosts(t *testing.T) {
	if _, err := RewriteRemoteURL("https://example.com/cat.jpg", PresetFor(PresetSmall), FormatJPEG); err == nil {
		t.Fatalf("expected error for non-rewritable host")
	}
}

func TestIsRemoteSource(t *testing.T) {
	cases := map[string]bool{
		sampleUnsplash:                  true,
		"https://unsplash.com/x":        true,
		"https://plus.unsplash.com/y":   true,
		"https://example.com/photo.jpg": false,
		"https://notunsplash.com/z":     false,
		"::bad url::":                   false,
	}
	for raw, want := range cases {
		if got := IsRemoteSource(raw); got != want {
			t.Fatalf("IsRemoteSource(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestResponsiveRemoteSetShape(t *testing.T) {
	set, err := ResponsiveRemoteSet(sampleUnsplash)
	if err != nil {
		t.Fatalf("ResponsiveRemoteSet: %v", err)
	}
	if len(set) != 7 {
		t.Fatalf("remote set has %d presets, want 7", len(set))
	}
	for key, urls := range set {
		for _, f := range []Format{FormatJPEG, FormatWebP, FormatAVIF} {
			if urls[f] == "" {
				t.Fatalf("preset %s missing %s url", key, f)
			}
		}
	}
}
