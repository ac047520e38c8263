package optimize

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Normalize applies the EXIF orientation recorded in the raw source bytes to
// img, then clones the result into a fresh pixel buffer so that no metadata
// container survives into the encoded outputs. Orientation is the only EXIF
// field honored; everything else is dropped. Failures leave the decoded
// image as-is rather than interrupting the pipeline.
func Normalize(data []byte, img image.Image) image.Image {
	if img == nil {
		return img
	}
	oriented := applyOrientation(img, orientationOf(data))
	return imaging.Clone(oriented)
}

// orientationOf reads the EXIF orientation tag from raw image bytes.
// Sources without parseable EXIF report 1 (upright).
func orientationOf(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// applyOrientation undoes the camera rotation/flip for EXIF orientation
// values 1-8. Unknown values return the image unchanged.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		// imaging rotations are counter-clockwise; EXIF 6 wants 90 CW.
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
