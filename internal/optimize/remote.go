package optimize

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// IsRemoteSource reports whether raw points at a third-party image host
// whose URLs the pipeline rewrites instead of re-encoding.
func IsRemoteSource(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "unsplash.com" || strings.HasSuffix(host, ".unsplash.com")
}

// RewriteRemoteURL rewrites an Unsplash URL's query parameters to request
// the preset's dimensions, crop and format server-side. No bytes leave or
// enter this process.
func RewriteRemoteURL(raw string, preset SizePreset, format Format) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("optimize: remote url: %w", err)
	}
	if !IsRemoteSource(raw) {
		return "", fmt.Errorf("optimize: %q is not a rewritable remote host", u.Hostname())
	}

	q := url.Values{}
	q.Set("w", strconv.Itoa(preset.Width))
	q.Set("h", strconv.Itoa(preset.Height))
	q.Set("fit", "crop")
	q.Set("crop", "faces,center")
	q.Set("auto", "format")
	switch format {
	case FormatWebP, FormatAVIF:
		q.Set("fm", string(format))
		q.Set("q", strconv.Itoa(preset.WebPQuality))
	default:
		q.Set("q", strconv.Itoa(preset.JPEGQuality))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ResponsiveRemoteSet produces the same preset/format URL shape as
// BuildResponsiveSet for a remote-hosted source, via pure URL rewriting.
func ResponsiveRemoteSet(raw string) (ResponsiveSet, error) {
	if !IsRemoteSource(raw) {
		return nil, fmt.Errorf("optimize: %q is not a rewritable remote source", raw)
	}
	set := make(ResponsiveSet, len(sizePresets))
	for _, preset := range Presets() {
		urls := make(map[Format]string, 3)
		for _, f := range []Format{FormatJPEG, FormatWebP, FormatAVIF} {
			u, err := RewriteRemoteURL(raw, preset, f)
			if err != nil {
				return nil, err
			}
			urls[f] = u
		}
		set[preset.Key] = urls
	}
	return set, nil
}
