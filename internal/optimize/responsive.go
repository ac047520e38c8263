package optimize

import (
	"fmt"

	"github.com/google/uuid"
)

// ResponsiveSet maps preset key -> format -> served URL for one upload.
type ResponsiveSet map[PresetKey]map[Format]string

// BuildResponsiveSet runs the pipeline once per size preset with WebP, AVIF
// and progressive JPEG all enabled, persists every produced variant and
// returns the shared upload identifier plus the preset/format URL table.
// The identifier ties the file family together by filename prefix; mapping
// it to a business entity is the caller's concern.
func (p *Pipeline) BuildResponsiveSet(data []byte, baseName string) (string, ResponsiveSet, error) {
	if p.store == nil {
		return "", nil, ErrNoStore
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("optimize: empty source %q", baseName)
	}

	id := uuid.NewString()
	opts := EncodeOptions{WebP: true, AVIF: true, Progressive: true}
	set := make(ResponsiveSet, len(sizePresets))

	for _, preset := range Presets() {
		res := p.Optimize(data, preset.Key, opts)

		urls := make(map[Format]string, 3)
		jpegURL, err := p.store.Write(id, string(preset.Key), string(FormatJPEG), res.JPEG)
		if err != nil {
			return "", nil, fmt.Errorf("optimize: persist %s jpeg: %w", preset.Key, err)
		}
		urls[FormatJPEG] = jpegURL

		if res.WebP != nil {
			if u, err := p.store.Write(id, string(preset.Key), string(FormatWebP), res.WebP); err != nil {
				p.logger.Warn().Err(err).Str("preset", string(preset.Key)).Msg("webp variant not persisted")
			} else {
				urls[FormatWebP] = u
			}
		}
		if res.AVIF != nil {
			if u, err := p.store.Write(id, string(preset.Key), string(FormatAVIF), res.AVIF); err != nil {
				p.logger.Warn().Err(err).Str("preset", string(preset.Key)).Msg("avif variant not persisted")
			} else {
				urls[FormatAVIF] = u
			}
		}
		set[preset.Key] = urls
	}

	p.logger.Info().Str("id", id).Str("source", baseName).Int("presets", len(set)).Msg("responsive set built")
	return id, set, nil
}
