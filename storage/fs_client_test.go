package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFSClientListSortedAndScoped(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "images", "lobby", "b.jpg"), "b")
	write(t, filepath.Join(root, "images", "lobby", "a.jpg"), "a")
	write(t, filepath.Join(root, "images", "other", "c.jpg"), "c")

	c, err := NewFSClient(root)
	if err != nil {
		t.Fatal(err)
	}
	objects, err := c.List(context.Background(), KioskPrefix("lobby"))
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objects))
	}
	if objects[0].Key != "images/lobby/a.jpg" || objects[1].Key != "images/lobby/b.jpg" {
		t.Fatalf("listing not sorted by key: %+v", objects)
	}
	if objects[0].Name != "a.jpg" {
		t.Fatalf("bad name: %q", objects[0].Name)
	}
	if objects[0].URL != "/media/images/lobby/a.jpg" {
		t.Fatalf("bad url: %q", objects[0].URL)
	}
}

func TestFSClientListMissingPrefix(t *testing.T) {
	c, err := NewFSClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	objects, err := c.List(context.Background(), KioskPrefix("nowhere"))
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 0 {
		t.Fatalf("expected empty listing, got %d", len(objects))
	}
}

func TestFSClientUploadDeleteFetch(t *testing.T) {
	c, err := NewFSClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	key := "images/lobby/promo.mp4"

	if err := c.Upload(ctx, key, "video/mp4", strings.NewReader("payload")); err != nil {
		t.Fatal(err)
	}
	data, err := c.Fetch(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("fetched %q", data)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Fetch(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := c.Delete(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestFSClientRejectsTraversal(t *testing.T) {
	c, err := NewFSClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Fetch(context.Background(), "../outside.txt"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
}
