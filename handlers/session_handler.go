package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"kiosk-signage-backend/services"
)

// SessionHandler handles display-mode and notification requests
type SessionHandler struct {
	sessions  *services.SessionService
	playlists *services.PlaylistService
	notify    *services.NotificationService
	logger    *zap.SugaredLogger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionService, playlists *services.PlaylistService, notify *services.NotificationService, logger *zap.SugaredLogger) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		playlists: playlists,
		notify:    notify,
		logger:    logger,
	}
}

// GetSession handles GET /api/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.sessions.Session())
}

// ToggleMute handles POST /api/session/mute/toggle
func (h *SessionHandler) ToggleMute(w http.ResponseWriter, r *http.Request) {
	muted := h.sessions.ToggleMute()
	writeJSON(w, map[string]bool{"muted": muted})
}

// SetFullscreen handles POST /api/session/fullscreen
func (h *SessionHandler) SetFullscreen(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Fullscreen bool `json:"fullscreen"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	h.sessions.SetFullscreen(request.Fullscreen)
	writeJSON(w, h.sessions.Session())
}

// FullscreenChanged handles POST /api/session/fullscreen/changed, the
// surface's notification of its actual fullscreen status.
func (h *SessionHandler) FullscreenChanged(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Fullscreen bool `json:"fullscreen"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	h.sessions.FullscreenChanged(request.Fullscreen)
	writeJSON(w, h.sessions.Session())
}

// SetUIVisible handles POST /api/session/ui
func (h *SessionHandler) SetUIVisible(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Visible bool `json:"visible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	h.sessions.SetUIVisible(request.Visible)
	writeJSON(w, h.sessions.Session())
}

// SetKiosk handles POST /api/session/kiosk, switching the display to another
// kiosk's media folder.
func (h *SessionHandler) SetKiosk(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if request.ID == "" {
		http.Error(w, "Kiosk id is required", http.StatusBadRequest)
		return
	}
	h.sessions.SetKioskID(request.ID)
	h.playlists.SetKioskID(r.Context(), request.ID)
	writeJSON(w, h.sessions.Session())
}

// GetNotification handles GET /api/notification
func (h *SessionHandler) GetNotification(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.notify.Current())
}
