// Package archive packs a project directory into a zip archive and reads
// one back. Output is deterministic: entries are sorted by path and carry a
// fixed modification time, so the same directory always yields the same bytes.
package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// DefaultLevel is the deflate level used when none is configured.
const DefaultLevel = flate.BestCompression

// epoch is the modification time stamped on every entry.
var epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Pack writes every regular file under dir on fsys to w as a zip archive.
// Entry names are slash-separated and relative to dir, with no enclosing
// directory. level is a compress/flate level; out-of-range values fall back
// to DefaultLevel. Pack returns the number of entries written and stops with
// ctx.Err() if ctx is cancelled between entries.
func Pack(ctx context.Context, fsys afero.Fs, dir string, w io.Writer, level int) (int, error) {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		level = DefaultLevel
	}

	var paths []string
	err := afero.Walk(fsys, dir, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	for _, name := range paths {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return 0, err
		}

		data, err := afero.ReadFile(fsys, filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			zw.Close()
			return 0, fmt.Errorf("reading %s: %w", name, err)
		}

		header := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: epoch,
		}
		header.SetMode(0644)

		entry, err := zw.CreateHeader(header)
		if err != nil {
			zw.Close()
			return 0, fmt.Errorf("creating entry %s: %w", name, err)
		}
		if _, err := entry.Write(data); err != nil {
			zw.Close()
			return 0, fmt.Errorf("writing entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finalizing archive: %w", err)
	}
	return len(paths), nil
}

// Unpack reads a zip archive into memory, keyed by entry name. Directory
// entries are skipped. Names that are absolute or escape the archive root are
// rejected.
func Unpack(r io.ReaderAt, size int64) (map[string][]byte, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}

	files := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !safeName(f.Name) {
			return nil, fmt.Errorf("invalid path in archive: %s", f.Name)
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening zip entry %s: %w", f.Name, err)
		}
		var buf bytes.Buffer
		_, err = io.Copy(&buf, rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", f.Name, err)
		}
		files[f.Name] = buf.Bytes()
	}
	return files, nil
}

func safeName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	clean := path.Clean(name)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
