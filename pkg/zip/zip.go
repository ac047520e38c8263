// Package zip bundles a responsive derivative family into a single archive
// for download.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

type Entry struct {
	Filename string
	Data     []byte
}

// Archive writes each entry into an in-memory zip. Entries that cannot be
// created are skipped; a write failure aborts with an error since the
// archive would be truncated.
func Archive(entries []Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	now := time.Now()
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.Filename, Method: zip.Deflate, Modified: now}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			continue
		}
		if _, err := w.Write(e.Data); err != nil {
			_ = zw.Close()
			return nil, fmt.Errorf("zip: write %s: %w", e.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
