//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/appforge-labs/appforge/internal/archive"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir     string // HOME, holds ~/.appforge/config.yaml
	ArtifactDir string // APPFORGE_ARTIFACT_DIR, workspaces and archives
	ProjectDir  string // where locally generated projects are written
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:     t.TempDir(),
		ArtifactDir: t.TempDir(),
		ProjectDir:  t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("USERPROFILE", env.HomeDir)
	t.Setenv("APPFORGE_ARTIFACT_DIR", env.ArtifactDir)

	return env
}

// unzip decodes an archive into a path → content map.
func unzip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	files, err := archive.Unpack(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unpacking archive: %v", err)
	}
	return files
}

// listDir returns the names of the entries in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file to not exist: %s", path)
	}
}

func assertArchiveHas(t *testing.T, files map[string][]byte, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if _, ok := files[filepath.ToSlash(p)]; !ok {
			t.Errorf("archive missing %s", p)
		}
	}
}
