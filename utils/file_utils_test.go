package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindFilesMatchesPatterns(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.jpg", "b.mp4", "c.txt", "sub/d.jpg"} {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := FindFiles(root, "*.jpg, *.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 matches, got %d: %v", len(files), files)
	}
}

func TestIsSubpath(t *testing.T) {
	root := t.TempDir()
	if !IsSubpath(root, filepath.Join(root, "a", "b.jpg")) {
		t.Fatal("nested path must be a subpath")
	}
	if IsSubpath(root, filepath.Join(root, "..", "outside.jpg")) {
		t.Fatal("escaped path must not be a subpath")
	}
	if IsSubpath(root, filepath.Dir(root)) {
		t.Fatal("parent must not be a subpath")
	}
}
