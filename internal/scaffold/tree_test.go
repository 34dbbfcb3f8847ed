package scaffold

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/appforge-labs/appforge/internal/options"
)

func TestNewTree_SortsAndIndexes(t *testing.T) {
	tree := mustTree(t,
		File{Path: "src/index.js", Content: []byte("b")},
		File{Path: "package.json", Content: []byte("a")},
		File{Path: "src/App.js", Content: []byte("cc")},
	)

	want := []string{"package.json", "src/App.js", "src/index.js"}
	if strings.Join(tree.Paths(), ",") != strings.Join(want, ",") {
		t.Errorf("Paths() = %v, want %v", tree.Paths(), want)
	}
	if tree.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tree.Len())
	}
	if tree.Size() != 4 {
		t.Errorf("Size() = %d, want 4", tree.Size())
	}
	f, ok := tree.File("src/App.js")
	if !ok || string(f.Content) != "cc" {
		t.Errorf("File(src/App.js) = %q, %v", f.Content, ok)
	}
	if !tree.HasDir("src") || tree.HasDir("sr") {
		t.Error("HasDir must match whole path segments")
	}
}

func TestNewTree_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		files []File
	}{
		{"duplicate", []File{{Path: "a.js"}, {Path: "a.js"}}},
		{"absolute", []File{{Path: "/etc/passwd"}}},
		{"parent", []File{{Path: "../a.js"}}},
		{"unclean", []File{{Path: "src//a.js"}}},
		{"empty", []File{{Path: ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newTree(tt.files); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTree_FilesIsACopy(t *testing.T) {
	tree := mustTree(t, File{Path: "a.js", Content: []byte("x")})
	files := tree.Files()
	files[0].Path = "b.js"

	if !tree.Has("a.js") || tree.Paths()[0] != "a.js" {
		t.Error("mutating Files() result changed the tree")
	}
}

func TestMaterialize(t *testing.T) {
	tree, err := Assemble(context.Background(), options.MustValidate(options.Raw{StateManagement: "redux", Middleware: "redux-saga"}))
	if err != nil {
		t.Fatal(err)
	}
	fsys := afero.NewMemMapFs()

	written, err := tree.Materialize(fsys, "/out/app")
	if err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}
	if len(written) != tree.Len() {
		t.Errorf("wrote %d files, want %d", len(written), tree.Len())
	}

	data, err := afero.ReadFile(fsys, filepath.Join("/out/app", "src", "redux", "store.js"))
	if err != nil {
		t.Fatalf("reading store: %v", err)
	}
	assertContains(t, string(data), "createSagaMiddleware")
}

func TestMaterialize_RefusesNonEmptyDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/out/existing.txt", []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	tree := mustTree(t, File{Path: "package.json", Content: []byte("{}")})
	_, err := tree.Materialize(fsys, "/out")
	if err == nil {
		t.Fatal("expected error for non-empty directory")
	}
	assertContains(t, err.Error(), "not empty")

	data, _ := afero.ReadFile(fsys, "/out/existing.txt")
	if string(data) != "keep" {
		t.Error("existing file was modified")
	}
}
