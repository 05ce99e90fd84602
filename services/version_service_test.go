package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"kiosk-signage-backend/storage"
)

func newVersionGate(descriptor *[]byte, fetchErr *error, reloads *int32) *VersionService {
	fs := &fakeStore{fetchFn: func(ctx context.Context, key string) ([]byte, error) {
		if key != storage.VersionKey {
			return nil, storage.ErrNotFound
		}
		if *fetchErr != nil {
			return nil, *fetchErr
		}
		return *descriptor, nil
	}}
	return NewVersionService(fs, "1.4.0", time.Minute, func() { atomic.AddInt32(reloads, 1) }, testLogger())
}

func TestVersionMatchNeverReloads(t *testing.T) {
	descriptor := []byte(`{"version":"1.4.0"}`)
	var fetchErr error
	var reloads int32
	gate := newVersionGate(&descriptor, &fetchErr, &reloads)

	for i := 0; i < 3; i++ {
		gate.Check(context.Background())
	}
	if n := atomic.LoadInt32(&reloads); n != 0 {
		t.Fatalf("expected no reloads while versions match, got %d", n)
	}
}

func TestVersionMismatchReloadsExactlyOnce(t *testing.T) {
	descriptor := []byte(`{"version":"2.0.0"}`)
	var fetchErr error
	var reloads int32
	gate := newVersionGate(&descriptor, &fetchErr, &reloads)

	for i := 0; i < 3; i++ {
		gate.Check(context.Background())
	}
	if n := atomic.LoadInt32(&reloads); n != 1 {
		t.Fatalf("expected exactly one reload per mismatch, got %d", n)
	}

	// A matching descriptor re-arms the trigger for the next mismatch.
	descriptor = []byte(`{"version":"1.4.0"}`)
	gate.Check(context.Background())
	descriptor = []byte(`{"version":"3.0.0"}`)
	gate.Check(context.Background())
	if n := atomic.LoadInt32(&reloads); n != 2 {
		t.Fatalf("expected a second reload after re-arming, got %d", n)
	}
}

func TestVersionFetchFailureIsIgnored(t *testing.T) {
	descriptor := []byte(`{"version":"2.0.0"}`)
	fetchErr := error(storage.ErrNotFound)
	var reloads int32
	gate := newVersionGate(&descriptor, &fetchErr, &reloads)

	gate.Check(context.Background())
	if n := atomic.LoadInt32(&reloads); n != 0 {
		t.Fatalf("fetch failure must be a no-op, got %d reloads", n)
	}
}

func TestMalformedDescriptorIsIgnored(t *testing.T) {
	var fetchErr error
	var reloads int32

	descriptor := []byte(`{not json`)
	gate := newVersionGate(&descriptor, &fetchErr, &reloads)
	gate.Check(context.Background())

	descriptor = []byte(`{}`)
	gate.Check(context.Background())

	if n := atomic.LoadInt32(&reloads); n != 0 {
		t.Fatalf("malformed descriptors must be ignored, got %d reloads", n)
	}
}
