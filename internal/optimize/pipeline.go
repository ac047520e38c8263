// Package optimize implements the image derivative pipeline: content
// classification, enhancement, orientation/metadata normalization and
// multi-format encoding across the responsive size presets.
//
// Every call is a synchronous, pure function of its input bytes plus the
// fixed preset and enhancement tables. The pipeline holds no mutable state,
// so one Pipeline value is safe for concurrent use.
package optimize

import (
	"errors"

	"github.com/rs/zerolog"

	"mediapress/internal/storage"
)

// Config tunes a Pipeline. The zero value picks the stock classifier
// thresholds.
type Config struct {
	Thresholds ClassifierThresholds
}

// Pipeline runs the full optimization flow. Construct with New; the zero
// value is not usable.
type Pipeline struct {
	thresholds ClassifierThresholds
	store      *storage.DerivativeStore
	logger     zerolog.Logger
}

// New builds a Pipeline. store may be nil for callers that only need the
// in-memory operations (Optimize, Encode, Classify); persisting operations
// then report an error instead of writing anywhere.
func New(cfg Config, store *storage.DerivativeStore, logger zerolog.Logger) *Pipeline {
	t := cfg.Thresholds
	if t == (ClassifierThresholds{}) {
		t = DefaultThresholds()
	}
	return &Pipeline{thresholds: t, store: store, logger: logger}
}

// ErrNoStore reports a persisting operation on a Pipeline built without a
// derivative store.
var ErrNoStore = errors.New("optimize: pipeline has no derivative store")

// Optimize runs the single-image flow for one preset: decode, normalize,
// classify, enhance, encode. It fails closed: when the source cannot be
// decoded or the mandatory JPEG cannot be produced, the result carries the
// original bytes tagged as JPEG with Fallback set, so callers always get a
// servable payload.
func (p *Pipeline) Optimize(data []byte, key PresetKey, opts EncodeOptions) EncodeResult {
	preset := PresetFor(key)

	img, mime, err := Decode(data)
	if err != nil {
		p.logger.Warn().Err(err).Str("mime", mime).Msg("source not decodable, serving original")
		return EncodeResult{JPEG: data, Label: LabelMixed, Fallback: true}
	}

	img = Normalize(data, img)
	label := p.Classify(img)
	img = p.Enhance(img, label)

	res, err := p.Encode(img, preset, opts)
	if err != nil {
		p.logger.Error().Err(err).Str("preset", string(preset.Key)).Msg("mandatory encode failed, serving original")
		return EncodeResult{JPEG: data, Label: label, Fallback: true}
	}
	res.Label = label
	return res
}
