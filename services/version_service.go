package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"kiosk-signage-backend/models"
	"kiosk-signage-backend/storage"
)

// VersionService polls the shared remote descriptor and triggers a forced
// reload when it disagrees with the running build identifier. This is how
// new builds get pushed to unattended kiosks; nothing here may ever crash or
// block the display.
type VersionService struct {
	store    storage.Client
	current  string
	interval time.Duration
	reload   func()
	logger   *zap.SugaredLogger

	mu        sync.Mutex
	triggered bool
}

// NewVersionService creates a version gate comparing the remote descriptor
// against current. reload is invoked on mismatch.
func NewVersionService(store storage.Client, current string, interval time.Duration, reload func(), logger *zap.SugaredLogger) *VersionService {
	return &VersionService{
		store:    store,
		current:  current,
		interval: interval,
		reload:   reload,
		logger:   logger,
	}
}

// Check fetches and compares the remote descriptor. Fetch or decode failures
// and empty descriptors are treated as "no update available". A mismatch
// triggers the reload exactly once; the trigger re-arms only after a
// matching descriptor is seen again.
func (s *VersionService) Check(ctx context.Context) {
	data, err := s.store.Fetch(ctx, storage.VersionKey)
	if err != nil {
		s.logger.Debugw("version fetch failed", "error", err)
		return
	}
	var desc models.VersionDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		s.logger.Debugw("version descriptor malformed", "error", err)
		return
	}
	if desc.Version == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if desc.Version == s.current {
		s.triggered = false
		return
	}
	if s.triggered {
		return
	}
	s.triggered = true
	s.logger.Infow("remote version mismatch, forcing reload",
		"running", s.current, "remote", desc.Version)
	s.reload()
}

// Run polls the descriptor on the configured interval until ctx is done.
func (s *VersionService) Run(ctx context.Context) {
	s.Check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}
