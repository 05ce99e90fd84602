package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when an object key does not exist in the store.
var ErrNotFound = errors.New("object not found")

// VersionKey is the shared descriptor holding the expected build identifier.
const VersionKey = "images/common/version.json"

// KioskPrefix returns the object key prefix for one kiosk's media folder.
func KioskPrefix(kioskID string) string {
	return "images/" + kioskID
}

// Object is one stored blob.
type Object struct {
	Key  string // full object key, e.g. "images/lobby/promo.mp4"
	Name string // base filename
	URL  string // resolved fetch URL
}

// Client is the object store the kiosk synchronizes against. Implementations
// must return listings sorted by key so positional diffs are deterministic.
type Client interface {
	List(ctx context.Context, prefix string) ([]Object, error)
	Upload(ctx context.Context, key, contentType string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	Fetch(ctx context.Context, key string) ([]byte, error)
}
