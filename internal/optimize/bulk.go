package optimize

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mediapress/internal/storage"
)

// BulkReport aggregates the outcome of one directory migration run. It lives
// only for the duration of the run; nothing about it is persisted.
type BulkReport struct {
	Processed   int
	Optimized   int
	Errors      int
	TotalBefore int64
	TotalAfter  int64
	Files       []BulkFileResult
}

// BulkFileResult is the per-file detail line of a bulk run.
type BulkFileResult struct {
	Path   string
	Before int64
	After  int64
	Label  ContentLabel
	Err    string
}

// SavingsPercent returns the aggregate size saving as a percentage of the
// bytes read. Zero input reports zero.
func (r *BulkReport) SavingsPercent() float64 {
	if r.TotalBefore == 0 {
		return 0
	}
	return float64(r.TotalBefore-r.TotalAfter) / float64(r.TotalBefore) * 100
}

// DefaultBulkExtensions are the source extensions a bulk run picks up when
// the caller passes none.
var DefaultBulkExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// BulkOptimize walks root recursively and re-encodes every matching file at
// the large preset, writing the JPEG (and WebP, when produced) derivative
// into reserved subdirectories beside the source. Derivative directories are
// never descended into, so reruns do not re-process their own output.
// Per-file failures are counted and logged; they never abort the walk.
func (p *Pipeline) BulkOptimize(root string, exts []string) (*BulkReport, error) {
	if len(exts) == 0 {
		exts = DefaultBulkExtensions
	}
	match := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		match[strings.ToLower(e)] = struct{}{}
	}
	reserved := make(map[string]struct{})
	for _, d := range storage.ReservedDirs() {
		reserved[d] = struct{}{}
	}

	report := &BulkReport{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, ok := reserved[d.Name()]; ok && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := match[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		report.Processed++
		detail, ferr := p.bulkFile(path)
		if ferr != nil {
			report.Errors++
			detail.Err = ferr.Error()
			p.logger.Warn().Err(ferr).Str("file", path).Msg("bulk: file skipped")
		} else {
			report.Optimized++
			report.TotalBefore += detail.Before
			report.TotalAfter += detail.After
		}
		report.Files = append(report.Files, detail)
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("optimize: bulk walk: %w", err)
	}

	p.logger.Info().
		Int("processed", report.Processed).
		Int("optimized", report.Optimized).
		Int("errors", report.Errors).
		Float64("savings_pct", report.SavingsPercent()).
		Msg("bulk run finished")
	return report, nil
}

// bulkFile optimizes one file at the large preset and writes its derivatives
// next to the source. Unlike Optimize it reports errors instead of falling
// back, so the walk can count genuine failures.
func (p *Pipeline) bulkFile(path string) (BulkFileResult, error) {
	detail := BulkFileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return detail, fmt.Errorf("read: %w", err)
	}
	detail.Before = int64(len(data))

	img, _, err := Decode(data)
	if err != nil {
		return detail, fmt.Errorf("decode: %w", err)
	}
	img = Normalize(data, img)
	label := p.Classify(img)
	detail.Label = label
	img = p.Enhance(img, label)

	res, err := p.Encode(img, PresetFor(PresetLarge), EncodeOptions{WebP: true})
	if err != nil {
		return detail, err
	}
	detail.After = int64(len(res.JPEG))

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := filepath.Dir(path)
	if err := writeDerivative(filepath.Join(dir, "optimized", base+".jpg"), res.JPEG); err != nil {
		return detail, err
	}
	if res.WebP != nil {
		if err := writeDerivative(filepath.Join(dir, "webp", base+".webp"), res.WebP); err != nil {
			p.logger.Warn().Err(err).Str("file", path).Msg("bulk: webp derivative not written")
		}
	}
	return detail, nil
}

func writeDerivative(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure derivative dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write derivative: %w", err)
	}
	return nil
}
