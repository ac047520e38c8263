package optimize

// PresetKey names one responsive size target.
type PresetKey string

const (
	PresetThumbnail  PresetKey = "thumbnail"
	PresetSmall      PresetKey = "small"
	PresetMedium     PresetKey = "medium"
	PresetLarge      PresetKey = "large"
	PresetHero       PresetKey = "hero"
	PresetMobileHero PresetKey = "mobile_hero"
	PresetUltra      PresetKey = "ultra"
)

// SizePreset is one entry of the fixed responsive size table. The table is
// initialized once and never mutated, so concurrent reads need no locking.
type SizePreset struct {
	Key         PresetKey
	Width       int
	Height      int
	JPEGQuality int
	WebPQuality int
}

var sizePresets = []SizePreset{
	{Key: PresetThumbnail, Width: 150, Height: 150, JPEGQuality: 75, WebPQuality: 65},
	{Key: PresetSmall, Width: 400, Height: 300, JPEGQuality: 80, WebPQuality: 70},
	{Key: PresetMedium, Width: 600, Height: 400, JPEGQuality: 80, WebPQuality: 70},
	{Key: PresetLarge, Width: 1200, Height: 800, JPEGQuality: 85, WebPQuality: 75},
	{Key: PresetHero, Width: 1920, Height: 800, JPEGQuality: 85, WebPQuality: 78},
	{Key: PresetMobileHero, Width: 768, Height: 400, JPEGQuality: 80, WebPQuality: 70},
	{Key: PresetUltra, Width: 2560, Height: 1080, JPEGQuality: 88, WebPQuality: 80},
}

// Presets returns the full size table in fan-out order.
func Presets() []SizePreset {
	out := make([]SizePreset, len(sizePresets))
	copy(out, sizePresets)
	return out
}

// PresetFor resolves key against the size table. Unknown keys fall back to
// the medium preset so callers always receive a usable target.
func PresetFor(key PresetKey) SizePreset {
	for _, p := range sizePresets {
		if p.Key == key {
			return p
		}
	}
	return PresetFor(PresetMedium)
}
