package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient talks to a remote object store over its JSON API:
//
//	GET    {base}/objects?prefix=images/lobby   -> [{"key":..,"name":..,"url":..}]
//	PUT    {base}/objects/{key}                 <- object bytes
//	DELETE {base}/objects/{key}
//	GET    {base}/objects/{key}                 -> object bytes
type HTTPClient struct {
	base   string
	client *http.Client
}

// NewHTTPClient creates a store client for the given base URL.
func NewHTTPClient(base string) *HTTPClient {
	return &HTTPClient{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// List returns the objects under prefix, sorted by key by the server.
func (c *HTTPClient) List(ctx context.Context, prefix string) ([]Object, error) {
	u := c.base + "/objects?prefix=" + url.QueryEscape(prefix)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list %s: unexpected status %d", prefix, resp.StatusCode)
	}
	var objects []Object
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, fmt.Errorf("list %s: decode response: %w", prefix, err)
	}
	return objects, nil
}

// Upload writes the object bytes under key.
func (c *HTTPClient) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.objectURL(key), r)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("upload %s: unexpected status %d", key, resp.StatusCode)
	}
	return nil
}

// Delete removes the object at key.
func (c *HTTPClient) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(key), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("delete %s: unexpected status %d", key, resp.StatusCode)
	}
}

// Fetch reads the object bytes at key.
func (c *HTTPClient) Fetch(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.objectURL(key), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", key, resp.StatusCode)
	}
}

func (c *HTTPClient) objectURL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return c.base + "/objects/" + strings.Join(parts, "/")
}
