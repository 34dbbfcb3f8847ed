package scaffold

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Tree is the complete set of generated files for one configuration, ordered
// by path.
type Tree struct {
	files []File
	index map[string]int
}

// newTree sorts files by path and rejects duplicates.
func newTree(files []File) (*Tree, error) {
	sorted := make([]File, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	t := &Tree{files: sorted, index: make(map[string]int, len(sorted))}
	for i, f := range sorted {
		if !validPath(f.Path) {
			return nil, fmt.Errorf("invalid path %q", f.Path)
		}
		if _, dup := t.index[f.Path]; dup {
			return nil, fmt.Errorf("duplicate path %q", f.Path)
		}
		t.index[f.Path] = i
	}
	return t, nil
}

// validPath accepts clean, relative, slash-separated paths.
func validPath(p string) bool {
	return p != "" && p != "." && p != ".." && !strings.HasPrefix(p, "/") && path.Clean(p) == p && !strings.HasPrefix(p, "../")
}

// Files returns the files in path order.
func (t *Tree) Files() []File {
	out := make([]File, len(t.files))
	copy(out, t.files)
	return out
}

// Paths returns every path in order.
func (t *Tree) Paths() []string {
	paths := make([]string, len(t.files))
	for i, f := range t.files {
		paths[i] = f.Path
	}
	return paths
}

// Len returns the number of files.
func (t *Tree) Len() int { return len(t.files) }

// File returns the file at p.
func (t *Tree) File(p string) (File, bool) {
	i, ok := t.index[p]
	if !ok {
		return File{}, false
	}
	return t.files[i], true
}

// Has reports whether p is in the tree.
func (t *Tree) Has(p string) bool {
	_, ok := t.index[p]
	return ok
}

// HasDir reports whether any file lives under dir.
func (t *Tree) HasDir(dir string) bool {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	for _, f := range t.files {
		if strings.HasPrefix(f.Path, prefix) {
			return true
		}
	}
	return false
}

// Size returns the total content size in bytes.
func (t *Tree) Size() int64 {
	var n int64
	for _, f := range t.files {
		n += int64(len(f.Content))
	}
	return n
}

// Materialize writes the tree under dir on fsys. dir must be missing or
// empty; existing projects are never overwritten.
func (t *Tree) Materialize(fsys afero.Fs, dir string) ([]string, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existing, err := afero.ReadDir(fsys, dir)
	if err == nil && len(existing) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", dir)
	}

	written := make([]string, 0, len(t.files))
	for _, f := range t.files {
		outPath := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := fsys.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return written, fmt.Errorf("creating directory for %s: %w", f.Path, err)
		}
		if err := afero.WriteFile(fsys, outPath, f.Content, 0644); err != nil {
			return written, fmt.Errorf("writing %s: %w", outPath, err)
		}
		written = append(written, f.Path)
	}
	return written, nil
}
