package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"kiosk-signage-backend/models"
	"kiosk-signage-backend/services"
)

// PlaylistHandler handles playlist and playback related requests
type PlaylistHandler struct {
	playlists *services.PlaylistService
	playback  *services.PlaybackService
	logger    *zap.SugaredLogger
}

// NewPlaylistHandler creates a new playlist handler
func NewPlaylistHandler(playlists *services.PlaylistService, playback *services.PlaybackService, logger *zap.SugaredLogger) *PlaylistHandler {
	return &PlaylistHandler{
		playlists: playlists,
		playback:  playback,
		logger:    logger,
	}
}

// GetPlaylist handles GET /api/playlist
func (h *PlaylistHandler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	items := h.playlists.Playlist()
	if items == nil {
		items = []models.MediaItem{}
	}
	writeJSON(w, models.PlaylistResponse{
		KioskID: h.playlists.KioskID(),
		Items:   items,
		Loaded:  h.playlists.Loaded(),
	})
}

// RefreshPlaylist handles POST /api/playlist/refresh
func (h *PlaylistHandler) RefreshPlaylist(w http.ResponseWriter, r *http.Request) {
	h.playlists.RefreshInBackground()
	w.WriteHeader(http.StatusAccepted)
}

// GetCurrent handles GET /api/playback/current
func (h *PlaylistHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.playback.Status())
}

// MediaEnded handles POST /api/playback/ended, the surface's signal that the
// current video finished playing.
func (h *PlaylistHandler) MediaEnded(w http.ResponseWriter, r *http.Request) {
	h.playback.MediaEnded()
	writeJSON(w, h.playback.Status())
}
