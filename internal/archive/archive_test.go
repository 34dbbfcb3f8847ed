package archive

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func writeTree(t *testing.T, fsys afero.Fs, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := afero.WriteFile(fsys, dir+"/"+name, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"package.json":       `{"name":"generated-react-app"}`,
		"public/index.html":  "<html></html>",
		"src/index.js":       "import React from 'react';\n",
		"src/redux/store.js": "export default store;\n",
	}
	writeTree(t, fsys, "/work/abc", files)

	var buf bytes.Buffer
	n, err := Pack(context.Background(), fsys, "/work/abc", &buf, 9)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	if n != len(files) {
		t.Errorf("Pack() wrote %d entries, want %d", n, len(files))
	}

	got, err := Unpack(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Unpack() error: %v", err)
	}
	if len(got) != len(files) {
		t.Errorf("Unpack() returned %d entries, want %d", len(got), len(files))
	}
	for name, want := range files {
		if string(got[name]) != want {
			t.Errorf("entry %s = %q, want %q", name, got[name], want)
		}
	}
}

func TestPack_Deterministic(t *testing.T) {
	files := map[string]string{
		"b.js":       "b",
		"a.js":       "a",
		"src/c.css":  "body {}",
		"src/d/e.js": "e",
	}

	pack := func() []byte {
		fsys := afero.NewMemMapFs()
		writeTree(t, fsys, "/p", files)
		var buf bytes.Buffer
		if _, err := Pack(context.Background(), fsys, "/p", &buf, 9); err != nil {
			t.Fatalf("Pack() error: %v", err)
		}
		return buf.Bytes()
	}

	if !bytes.Equal(pack(), pack()) {
		t.Error("Pack() output differs between runs")
	}
}

func TestPack_NoEnclosingDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/work/id/project", map[string]string{"package.json": "{}"})

	var buf bytes.Buffer
	if _, err := Pack(context.Background(), fsys, "/work/id/project", &buf, 9); err != nil {
		t.Fatal(err)
	}
	got, err := Unpack(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got["package.json"]; !ok {
		t.Errorf("expected package.json at archive root, got %v", keys(got))
	}
}

func TestPack_LevelFallback(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/p", map[string]string{"a.txt": "aaaaaaaaaaaaaaaa"})

	var a, b bytes.Buffer
	if _, err := Pack(context.Background(), fsys, "/p", &a, 42); err != nil {
		t.Fatal(err)
	}
	if _, err := Pack(context.Background(), fsys, "/p", &b, DefaultLevel); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("out-of-range level should pack like DefaultLevel")
	}
}

func TestPack_CancelledContext(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/p", map[string]string{"a.js": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := Pack(ctx, fsys, "/p", &buf, 9)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Pack() error = %v, want context.Canceled", err)
	}
}

func TestPack_MissingDir(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Pack(context.Background(), afero.NewMemMapFs(), "/missing", &buf, 9); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestUnpack_NotZip(t *testing.T) {
	data := []byte("not a zip")
	if _, err := Unpack(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Fatal("expected error")
	}
}

func TestSafeName(t *testing.T) {
	tests := map[string]bool{
		"package.json":    true,
		"src/App.js":      true,
		"../escape.js":    false,
		"src/../../x":     false,
		"/etc/passwd":     false,
		"src\\windows.js": false,
		"":                false,
	}
	for name, want := range tests {
		if got := safeName(name); got != want {
			t.Errorf("safeName(%q) = %v, want %v", name, got, want)
		}
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
