package services

import (
	"context"
	"path"
	"sync"
	"time"

	"go.uber.org/zap"

	"kiosk-signage-backend/models"
	"kiosk-signage-backend/storage"
)

// PlaylistService keeps the in-memory playlist in sync with the kiosk's
// remote media folder. The remote store is the sole source of truth; the
// playlist is rebuilt from each successful listing and never persisted.
type PlaylistService struct {
	store    storage.Client
	interval time.Duration
	logger   *zap.SugaredLogger

	mu         sync.RWMutex
	kioskID    string
	playlist   []models.MediaItem
	loaded     bool
	generation uint64
	onChange   func([]models.MediaItem)
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(store storage.Client, kioskID string, interval time.Duration, logger *zap.SugaredLogger) *PlaylistService {
	return &PlaylistService{
		store:    store,
		interval: interval,
		logger:   logger,
		kioskID:  kioskID,
	}
}

// OnChange registers the callback invoked whenever reconciliation replaces the
// playlist. Must be called before Run; only one callback is supported.
func (s *PlaylistService) OnChange(fn func([]models.MediaItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Playlist returns the currently held playlist.
func (s *PlaylistService) Playlist() []models.MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playlist
}

// Loaded reports whether an initial listing has succeeded. The cold-start
// path is the only one allowed to surface a loading indicator.
func (s *PlaylistService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// KioskID returns the kiosk this service is scoped to.
func (s *PlaylistService) KioskID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kioskID
}

// SetKioskID switches the service to another kiosk. The held playlist is
// cleared, in-flight refreshes are invalidated via the generation counter,
// and a fresh listing is fetched immediately.
func (s *PlaylistService) SetKioskID(ctx context.Context, kioskID string) {
	s.mu.Lock()
	if kioskID == s.kioskID {
		s.mu.Unlock()
		return
	}
	s.logger.Infow("switching kiosk", "from", s.kioskID, "to", kioskID)
	s.kioskID = kioskID
	s.playlist = nil
	s.loaded = false
	s.generation++
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(nil)
	}
	_ = s.Refresh(ctx)
}

// Refresh lists the kiosk's remote folder and reconciles the result against
// the held playlist. A refresh whose generation is no longer the latest
// issued discards its listing so an overlapping slower request cannot
// overwrite newer data with stale data.
func (s *PlaylistService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	kioskID := s.kioskID
	s.mu.Unlock()

	objects, err := s.store.List(ctx, storage.KioskPrefix(kioskID))
	if err != nil {
		// Listing failures retain the prior playlist and are never surfaced.
		s.logger.Warnw("playlist listing failed", "kioskId", kioskID, "error", err)
		return err
	}
	items := buildPlaylist(objects)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debugw("discarding stale listing", "kioskId", kioskID, "generation", gen)
		return nil
	}
	next, changed := Reconcile(s.playlist, items)
	s.playlist = next
	s.loaded = true
	fn := s.onChange
	s.mu.Unlock()

	if changed {
		s.logger.Infow("playlist replaced", "kioskId", kioskID, "items", len(next))
		if fn != nil {
			fn(next)
		}
	}
	return nil
}

// RefreshInBackground runs a refresh on its own timeout, detached from the
// caller. Used after mutations so an upload is reflected without waiting for
// the next scheduled tick.
func (s *PlaylistService) RefreshInBackground() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = s.Refresh(ctx)
	}()
}

// Run polls the remote folder on the configured interval until ctx is done.
func (s *PlaylistService) Run(ctx context.Context) {
	_ = s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}

// Reconcile diffs the freshly listed playlist against the held one. The new
// list is adopted when lengths differ or any position's URL differs;
// otherwise the previous slice is kept untouched so downstream consumers can
// skip re-initialization (an in-progress video keeps playing).
func Reconcile(prev, next []models.MediaItem) ([]models.MediaItem, bool) {
	if len(prev) != len(next) {
		return next, true
	}
	for i := range next {
		if prev[i].URL != next[i].URL {
			return next, true
		}
	}
	return prev, false
}

// buildPlaylist maps a store listing to media items, classifying each entry
// by filename.
func buildPlaylist(objects []storage.Object) []models.MediaItem {
	items := make([]models.MediaItem, 0, len(objects))
	for _, obj := range objects {
		name := obj.Name
		if name == "" {
			name = path.Base(obj.Key)
		}
		items = append(items, models.MediaItem{
			ID:          obj.Key,
			DisplayName: name,
			URL:         obj.URL,
			Kind:        models.ClassifyMedia(name),
		})
	}
	return items
}
