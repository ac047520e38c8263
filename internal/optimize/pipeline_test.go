package optimize

import (
	"bytes"
	"image/jpeg"
	"testing"
)

func TestOptimizeHappyPath(t *testing.T) {
	p := testPipeline()
	data := jpegBytes(t, gradientImage(1200, 900))

	res := p.Optimize(data, PresetSmall, EncodeOptions{WebP: true})
	if res.Fallback {
		t.Fatalf("unexpected fallback for a valid source")
	}
	if len(res.JPEG) == 0 {
		t.Fatalf("jpeg output is mandatory")
	}
	img, err := jpeg.Decode(bytes.NewReader(res.JPEG))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() > 400 || img.Bounds().Dy() > 300 {
		t.Fatalf("output %v exceeds small preset", img.Bounds())
	}
}

func TestOptimizeFailsClosedOnGarbage(t *testing.T) {
	p := testPipeline()
	garbage := []byte("definitely not an image")

	res := p.Optimize(garbage, PresetMedium, EncodeOptions{WebP: true, AVIF: true})
	if !res.Fallback {
		t.Fatalf("expected fallback result for undecodable source")
	}
	if !bytes.Equal(res.JPEG, garbage) {
		t.Fatalf("fallback must return the original bytes untouched")
	}
	if res.WebP != nil || res.AVIF != nil {
		t.Fatalf("fallback must not fabricate optional variants")
	}
}

func TestOptimizeUnknownPresetFallsBackToMedium(t *testing.T) {
	p := testPipeline()
	data := jpegBytes(t, gradientImage(2000, 1500))

	res := p.Optimize(data, PresetKey("nonsense"), EncodeOptions{})
	if res.Fallback {
		t.Fatalf("unexpected fallback")
	}
	img, err := jpeg.Decode(bytes.NewReader(res.JPEG))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	medium := PresetFor(PresetMedium)
	if img.Bounds().Dx() > medium.Width || img.Bounds().Dy() > medium.Height {
		t.Fatalf("unknown preset should resolve to medium, got %v", img.Bounds())
	}
}

func TestOptimizeJPEGAlwaysNonEmpty(t *testing.T) {
	p := testPipeline()
	sources := [][]byte{
		jpegBytes(t, gradientImage(50, 50)),
		pngBytes(t, transparentImage(64, 64)),
		{0x00},
		nil,
	}
	for i, src := range sources {
		res := p.Optimize(src, PresetThumbnail, EncodeOptions{})
		if len(src) > 0 && len(res.JPEG) == 0 {
			t.Fatalf("source %d: empty jpeg result", i)
		}
	}
}
