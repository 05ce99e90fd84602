package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"kiosk-signage-backend/utils"
)

// FSClient is an object store backed by a local directory. Object keys map to
// slash-separated paths under the root, and URLs resolve to the /media/ route
// served by this process.
type FSClient struct {
	root string
}

// NewFSClient creates a filesystem store rooted at dir.
func NewFSClient(dir string) (*FSClient, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &FSClient{root: dir}, nil
}

// List returns all objects under prefix, sorted by key. A missing prefix
// directory yields an empty listing, not an error.
func (c *FSClient) List(ctx context.Context, prefix string) ([]Object, error) {
	dir, err := c.resolve(prefix)
	if err != nil {
		return nil, err
	}
	if !utils.FileExists(dir) {
		return nil, nil
	}

	paths, err := utils.FindFiles(dir, "*")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	objects := make([]Object, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(c.root, p)
		if err != nil {
			continue
		}
		key := filepath.ToSlash(rel)
		objects = append(objects, Object{
			Key:  key,
			Name: filepath.Base(p),
			URL:  "/media/" + key,
		})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// Upload writes the object bytes under key, creating parent directories.
func (c *FSClient) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	path, err := c.resolve(key)
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create dir for %s: %w", key, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes the object at key.
func (c *FSClient) Delete(ctx context.Context, key string) error {
	path, err := c.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Fetch reads the object bytes at key.
func (c *FSClient) Fetch(ctx context.Context, key string) ([]byte, error) {
	path, err := c.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	return data, nil
}

// Path maps an object key to its on-disk location, for direct file serving.
func (c *FSClient) Path(key string) (string, error) {
	return c.resolve(key)
}

// resolve maps a key or prefix to an absolute path, rejecting traversal.
func (c *FSClient) resolve(key string) (string, error) {
	path := filepath.Join(c.root, filepath.FromSlash(key))
	if !utils.IsSubpath(c.root, path) {
		return "", os.ErrPermission
	}
	return path, nil
}
