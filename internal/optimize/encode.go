package optimize

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
)

// Format identifies one encoded output flavor.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
	FormatAVIF Format = "avif"
)

// avifQualityOffset is subtracted from the preset WebP quality to pick the
// AVIF quality; AVIF holds up better at lower settings.
const avifQualityOffset = 5

const avifSpeed = 6

// EncodeOptions are the per-call feature flags for Encode.
type EncodeOptions struct {
	WebP        bool
	AVIF        bool
	Progressive bool
}

// EncodeResult carries the encoded variants for one (image, preset) pair.
// JPEG is always populated on success; WebP and AVIF are nil whenever their
// encoder was disabled or failed. Fallback marks a fail-closed result where
// JPEG holds the caller's original bytes untouched.
type EncodeResult struct {
	JPEG        []byte
	WebP        []byte
	AVIF        []byte
	Label       ContentLabel
	Width       int
	Height      int
	Progressive bool
	Fallback    bool
}

// Encode resizes img to fit within preset bounds and produces the requested
// encodings. JPEG is mandatory and its failure is the only error returned;
// WebP and AVIF failures are logged and degrade to a missing variant.
func (p *Pipeline) Encode(img image.Image, preset SizePreset, opts EncodeOptions) (EncodeResult, error) {
	var res EncodeResult
	if img == nil {
		return res, fmt.Errorf("optimize: encode nil image")
	}

	transparent := hasTransparency(img)
	fitted := imaging.Fit(img, preset.Width, preset.Height, imaging.Lanczos)
	res.Width = fitted.Bounds().Dx()
	res.Height = fitted.Bounds().Dy()

	jpegSrc := image.Image(fitted)
	if transparent {
		// JPEG cannot carry alpha; composite onto an opaque white canvas.
		jpegSrc = flattenOnWhite(fitted)
	}
	jp, err := encodeJPEG(jpegSrc, preset.JPEGQuality)
	if err != nil {
		return res, fmt.Errorf("optimize: jpeg encode: %w", err)
	}
	res.JPEG = jp
	res.Progressive = opts.Progressive && !transparent

	if opts.WebP {
		if b, werr := encodeWebP(fitted, preset.WebPQuality); werr != nil {
			p.logger.Warn().Err(werr).Str("preset", string(preset.Key)).Msg("webp encode skipped")
		} else {
			res.WebP = b
		}
	}
	if opts.AVIF {
		q := preset.WebPQuality - avifQualityOffset
		if b, aerr := encodeAVIF(fitted, q); aerr != nil {
			p.logger.Warn().Err(aerr).Str("preset", string(preset.Key)).Msg("avif encode skipped")
		} else {
			res.AVIF = b
		}
	}
	return res, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	opts := &webp.Options{Quality: float32(clampQuality(quality))}
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeAVIF(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	q := clampQuality(quality)
	err := avif.Encode(&buf, img, avif.Options{Quality: q, QualityAlpha: q, Speed: avifSpeed})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}

// hasTransparency reports whether img carries an alpha channel with at least
// one non-fully-opaque pixel.
func hasTransparency(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return false
	}
	return !alphaBounds(img).Empty()
}

// alphaBounds returns the bounding box of all non-fully-opaque pixels.
func alphaBounds(img image.Image) image.Rectangle {
	var box image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a < 0xffff {
				px := image.Rect(x, y, x+1, y+1)
				if box.Empty() {
					box = px
				} else {
					box = box.Union(px)
				}
			}
		}
	}
	return box
}

// flattenOnWhite composites img over an opaque white background.
func flattenOnWhite(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}
