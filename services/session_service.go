package services

import (
	"sync"

	"go.uber.org/zap"

	"kiosk-signage-backend/models"
)

// SessionService holds the kiosk's display-mode state: mute, fullscreen and
// admin overlay visibility. It outlives playlist replacement.
type SessionService struct {
	playback *PlaybackService
	logger   *zap.SugaredLogger

	mu         sync.RWMutex
	kioskID    string
	muted      bool
	fullscreen bool
	uiVisible  bool
}

// NewSessionService creates a new session service. Sessions start muted with
// the admin overlay visible.
func NewSessionService(kioskID string, playback *PlaybackService, logger *zap.SugaredLogger) *SessionService {
	return &SessionService{
		playback:  playback,
		logger:    logger,
		kioskID:   kioskID,
		muted:     true,
		uiVisible: true,
	}
}

// Session returns a snapshot of the session state, with the current index
// taken from the playback machine.
func (s *SessionService) Session() models.KioskSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.KioskSession{
		KioskID:      s.kioskID,
		Muted:        s.muted,
		Fullscreen:   s.fullscreen,
		UIVisible:    s.uiVisible,
		CurrentIndex: s.playback.Status().Index,
	}
}

// ToggleMute flips the mute flag and immediately re-applies it to whichever
// item is currently showing. Returns the new value.
func (s *SessionService) ToggleMute() bool {
	s.mu.Lock()
	s.muted = !s.muted
	muted := s.muted
	s.mu.Unlock()

	s.logger.Infow("mute toggled", "muted", muted)
	s.playback.SetMuted(muted)
	return muted
}

// SetFullscreen requests fullscreen on or off. Entering fullscreen also
// hides the admin overlay as a combined action.
func (s *SessionService) SetFullscreen(on bool) {
	s.mu.Lock()
	s.fullscreen = on
	if on {
		s.uiVisible = false
	}
	s.mu.Unlock()
	s.logger.Infow("fullscreen requested", "fullscreen", on)
}

// FullscreenChanged syncs the flag with the surface's actual fullscreen
// status, so leaving fullscreen through any mechanism is reflected. The
// overlay is left alone.
func (s *SessionService) FullscreenChanged(actual bool) {
	s.mu.Lock()
	s.fullscreen = actual
	s.mu.Unlock()
	s.logger.Debugw("fullscreen changed", "fullscreen", actual)
}

// SetUIVisible shows or hides the admin overlay, independent of fullscreen.
func (s *SessionService) SetUIVisible(visible bool) {
	s.mu.Lock()
	s.uiVisible = visible
	s.mu.Unlock()
}

// SetKioskID records the kiosk the session is scoped to.
func (s *SessionService) SetKioskID(kioskID string) {
	s.mu.Lock()
	s.kioskID = kioskID
	s.mu.Unlock()
}
