package optimize

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gen2brain/avif"
)

// ErrUnsupportedFormat reports a source whose sniffed content type is not an
// image format the pipeline can decode.
var ErrUnsupportedFormat = errors.New("optimize: unsupported source format")

// Decode sniffs the content type of data and decodes it into a bitmap.
// Supported sources: JPEG, PNG, GIF (first frame), WebP and AVIF.
func Decode(data []byte) (image.Image, string, error) {
	mt := mimetype.Detect(data)

	var img image.Image
	var err error
	switch {
	case mt.Is("image/jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(data))
	case mt.Is("image/png"):
		img, err = png.Decode(bytes.NewReader(data))
	case mt.Is("image/gif"):
		img, err = gif.Decode(bytes.NewReader(data))
	case mt.Is("image/webp"):
		img, err = webp.Decode(bytes.NewReader(data))
	case mt.Is("image/avif"):
		img, err = avif.Decode(bytes.NewReader(data))
	default:
		return nil, mt.String(), ErrUnsupportedFormat
	}
	if err != nil {
		return nil, mt.String(), err
	}
	return img, mt.String(), nil
}
