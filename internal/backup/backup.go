package backup

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Archive bundles the given files into an in-memory zip (no directories).
// Files that do not exist yet are skipped.
func Archive(files []string) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			zw.Close()
			return nil, err
		}
		w, err := zw.Create(filepath.Base(path))
		if err != nil {
			zw.Close()
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

// Restore extracts archive entries into dir, but only entries whose base name
// is one of the allowed collection files. Everything else in the archive is
// ignored.
func Restore(dir string, archive []byte, allowed []string) error {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return err
	}
	names := map[string]bool{}
	for _, n := range allowed {
		names[filepath.Base(n)] = true
	}
	for _, f := range zr.File {
		base := filepath.Base(f.Name)
		if !names[base] {
			continue
		}
		src, err := f.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, base), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
