package optimize

import (
	"image"

	"github.com/disintegration/imaging"
)

// enhanceParams are multiplier-style adjustment factors relative to 1.0.
type enhanceParams struct {
	sharpness  float64
	contrast   float64
	saturation float64
}

// enhanceTable maps every content label to its adjustment triple. Indexed by
// ContentLabel, so the lookup is closed at compile time.
var enhanceTable = [...]enhanceParams{
	LabelPhoto:   {sharpness: 1.1, contrast: 1.05, saturation: 1.02},
	LabelGraphic: {sharpness: 1.2, contrast: 1.1, saturation: 1.0},
	LabelText:    {sharpness: 1.3, contrast: 1.15, saturation: 0.98},
	LabelMixed:   {sharpness: 1.1, contrast: 1.08, saturation: 1.01},
}

// Enhance applies label-specific sharpness, contrast and saturation
// adjustments, in that order. Adjustments with a 1.0 multiplier are skipped.
// Enhancement is best-effort: a nil or out-of-range input comes back
// untouched.
func (p *Pipeline) Enhance(img image.Image, label ContentLabel) image.Image {
	if img == nil {
		return img
	}
	if label < 0 || int(label) >= len(enhanceTable) {
		return img
	}
	params := enhanceTable[label]

	out := img
	if params.sharpness != 1.0 {
		// imaging.Sharpen takes a blur sigma; scale the multiplier delta
		// onto it so 1.1 is a gentle pass and 1.3 is noticeably crisper.
		out = imaging.Sharpen(out, (params.sharpness-1)*2)
	}
	if params.contrast != 1.0 {
		out = imaging.AdjustContrast(out, (params.contrast-1)*100)
	}
	if params.saturation != 1.0 {
		out = imaging.AdjustSaturation(out, (params.saturation-1)*100)
	}
	return out
}
