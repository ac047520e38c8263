// Package storage persists encoded image derivatives on the local
// filesystem and builds the URLs under which they are served.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// URLPrefix is the fixed serving prefix for derivative files.
const URLPrefix = "/api/media"

// formatDirs maps an encoding format name to its subdirectory and file
// extension. The directory names are reserved: the bulk walker refuses to
// descend into them.
var formatDirs = map[string]struct {
	dir string
	ext string
}{
	"jpeg": {dir: "optimized", ext: ".jpg"},
	"webp": {dir: "webp", ext: ".webp"},
	"avif": {dir: "avif", ext: ".avif"},
}

// ReservedDirs lists the derivative subdirectory names.
func ReservedDirs() []string {
	return []string{"optimized", "webp", "avif"}
}

// Asset is one derivative file loaded back from the store.
type Asset struct {
	Filename string
	Format   string
	Data     []byte
}

// DerivativeStore writes derivative files under a configured root, one
// subdirectory per format. It is safe for concurrent use: every write goes
// to a uniquely named file.
type DerivativeStore struct {
	root   string
	logger zerolog.Logger
}

// NewDerivativeStore initializes the store rooted at root, creating the
// per-format subdirectories. Directory creation happens here, on explicit
// startup, never as an import side effect.
func NewDerivativeStore(root string, logger zerolog.Logger) (*DerivativeStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("storage: media root is required")
	}
	for _, dir := range ReservedDirs() {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("storage: ensure %s dir: %w", dir, err)
		}
	}
	return &DerivativeStore{root: root, logger: logger}, nil
}

// Root returns the configured media root directory.
func (s *DerivativeStore) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

// Write persists one encoded variant as {id}_{preset}.{ext} in the format's
// subdirectory and returns its served URL.
func (s *DerivativeStore) Write(id, preset, format string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	fd, ok := formatDirs[format]
	if !ok {
		return "", fmt.Errorf("storage: unknown format %q", format)
	}
	name, err := sanitizeName(id + "_" + preset + fd.ext)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.root, fd.dir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write variant: %w", err)
	}
	return path.Join(URLPrefix, fd.dir, name), nil
}

// Resolve maps a served (format dir, filename) pair back to an absolute path,
// rejecting traversal attempts.
func (s *DerivativeStore) Resolve(formatDir, filename string) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	var known bool
	for _, d := range ReservedDirs() {
		if d == formatDir {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("storage: unknown format dir %q", formatDir)
	}
	name, err := sanitizeName(filename)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.root, formatDir, name)
	if _, err := os.Stat(full); err != nil {
		return "", fmt.Errorf("storage: resolve %s/%s: %w", formatDir, name, err)
	}
	return full, nil
}

// ListFamily loads every derivative whose filename starts with id. One
// upload shares a single identifier across all presets and formats, so this
// returns the complete responsive family.
func (s *DerivativeStore) ListFamily(id string) ([]Asset, error) {
	if s == nil {
		return nil, errors.New("storage: no store configured")
	}
	if _, err := sanitizeName(id); err != nil {
		return nil, err
	}
	var assets []Asset
	for format, fd := range formatDirs {
		entries, err := os.ReadDir(filepath.Join(s.root, fd.dir))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasPrefix(e.Name(), id+"_") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(s.root, fd.dir, e.Name()))
			if err != nil {
				s.logger.Warn().Err(err).Str("file", e.Name()).Msg("skipping unreadable derivative")
				continue
			}
			assets = append(assets, Asset{Filename: e.Name(), Format: format, Data: data})
		}
	}
	return assets, nil
}

// Sweep deletes derivative files older than olderThan from every format
// subdirectory and returns how many were removed. Unreadable entries are
// skipped, not fatal.
func (s *DerivativeStore) Sweep(olderThan time.Duration) (int, error) {
	if s == nil {
		return 0, errors.New("storage: no store configured")
	}
	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, dir := range ReservedDirs() {
		entries, err := os.ReadDir(filepath.Join(s.root, dir))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				full := filepath.Join(s.root, dir, e.Name())
				if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
					s.logger.Warn().Err(err).Str("file", full).Msg("sweep: remove failed")
					continue
				}
				removed++
			}
		}
	}
	return removed, nil
}

// sanitizeName validates a bare filename: no separators, no traversal.
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("storage: filename is required")
	}
	if strings.ContainsAny(name, "/\\") || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("storage: invalid filename %q", name)
	}
	return name, nil
}
