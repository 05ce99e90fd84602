package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"kiosk-signage-backend/models"
	"kiosk-signage-backend/storage"
)

// fakeStore is a storage.Client whose behavior is driven by function fields.
type fakeStore struct {
	listFn   func(ctx context.Context, prefix string) ([]storage.Object, error)
	uploadFn func(ctx context.Context, key, contentType string, r io.Reader) error
	deleteFn func(ctx context.Context, key string) error
	fetchFn  func(ctx context.Context, key string) ([]byte, error)
}

func (f *fakeStore) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, prefix)
}

func (f *fakeStore) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	if f.uploadFn == nil {
		return nil
	}
	return f.uploadFn(ctx, key, contentType, r)
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, key)
}

func (f *fakeStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	if f.fetchFn == nil {
		return nil, storage.ErrNotFound
	}
	return f.fetchFn(ctx, key)
}

// kioskObjects builds a sorted-by-name listing under the kiosk prefix.
func kioskObjects(kioskID string, names ...string) []storage.Object {
	objects := make([]storage.Object, 0, len(names))
	for _, name := range names {
		key := storage.KioskPrefix(kioskID) + "/" + name
		objects = append(objects, storage.Object{Key: key, Name: name, URL: "/media/" + key})
	}
	return objects
}

// fakeDisplay records render events for assertions.
type fakeDisplay struct {
	mu     sync.Mutex
	events []string
}

func (d *fakeDisplay) ShowImage(item models.MediaItem) {
	d.push("image:" + item.DisplayName)
}

func (d *fakeDisplay) ShowVideo(item models.MediaItem, muted bool) {
	d.push(fmt.Sprintf("video:%s muted=%t", item.DisplayName, muted))
}

func (d *fakeDisplay) SetMuted(muted bool) {
	d.push(fmt.Sprintf("mute:%t", muted))
}

func (d *fakeDisplay) Clear() {
	d.push("clear")
}

func (d *fakeDisplay) push(event string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *fakeDisplay) snapshot() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *fakeDisplay) last() string {
	events := d.snapshot()
	if len(events) == 0 {
		return ""
	}
	return events[len(events)-1]
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}
