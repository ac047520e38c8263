package optimize

import (
	"image"

	"github.com/disintegration/imaging"
)

// ContentLabel is the heuristic class of an image, used to pick enhancement
// parameters before encoding.
type ContentLabel int

const (
	LabelPhoto ContentLabel = iota
	LabelGraphic
	LabelText
	LabelMixed
)

func (l ContentLabel) String() string {
	switch l {
	case LabelPhoto:
		return "photo"
	case LabelGraphic:
		return "graphic"
	case LabelText:
		return "text"
	default:
		return "mixed"
	}
}

// ClassifierThresholds tunes the classification rules. The defaults are
// empirically chosen; treat them as a starting point, not ground truth.
type ClassifierThresholds struct {
	PhotoVariance   float64
	PhotoEdge       float64
	TextEdge        float64
	GraphicVariance float64
}

// DefaultThresholds returns the stock classifier tuning.
func DefaultThresholds() ClassifierThresholds {
	return ClassifierThresholds{
		PhotoVariance:   200,
		PhotoEdge:       30,
		TextEdge:        60,
		GraphicVariance: 100,
	}
}

// analysisSize bounds the cost of classification regardless of source size.
const analysisSize = 100

// laplacian is the 3x3 edge-detection kernel used for edge intensity.
var laplacian = [9]float64{
	0, -1, 0,
	-1, 4, -1,
	0, -1, 0,
}

// Classify inspects a downsampled sample of img and labels it photo, graphic,
// text, or mixed. It never fails: anything it cannot analyze is labeled
// mixed. Classification is a pure function of the pixel data.
func (p *Pipeline) Classify(img image.Image) ContentLabel {
	if img == nil {
		return LabelMixed
	}
	b := img.Bounds()
	if b.Dx() < 2 || b.Dy() < 2 {
		return LabelMixed
	}

	sample := imaging.Resize(img, analysisSize, analysisSize, imaging.Box)
	variance := colorVariance(sample)
	edges := edgeIntensity(sample)

	t := p.thresholds
	switch {
	case variance > t.PhotoVariance && edges < t.PhotoEdge:
		return LabelPhoto
	case edges > t.TextEdge:
		return LabelText
	case variance < t.GraphicVariance:
		return LabelGraphic
	default:
		return LabelMixed
	}
}

// colorVariance averages the per-channel (max-min) range over R, G and B.
func colorVariance(img *image.NRGBA) float64 {
	mins := [3]uint8{255, 255, 255}
	maxs := [3]uint8{0, 0, 0}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			px := row[x*4 : x*4+3]
			for c := 0; c < 3; c++ {
				if px[c] < mins[c] {
					mins[c] = px[c]
				}
				if px[c] > maxs[c] {
					maxs[c] = px[c]
				}
			}
		}
	}

	var sum float64
	for c := 0; c < 3; c++ {
		if maxs[c] > mins[c] {
			sum += float64(maxs[c] - mins[c])
		}
	}
	return sum / 3
}

// edgeIntensity runs a Laplacian filter over the grayscale sample and returns
// the mean response.
func edgeIntensity(img *image.NRGBA) float64 {
	gray := imaging.Grayscale(img)
	edges := imaging.Convolve3x3(gray, laplacian, nil)

	b := edges.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}

	var sum float64
	for y := 0; y < b.Dy(); y++ {
		row := edges.Pix[y*edges.Stride:]
		for x := 0; x < b.Dx(); x++ {
			sum += float64(row[x*4])
		}
	}
	return sum / float64(total)
}
