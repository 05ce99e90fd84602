package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"kiosk-signage-backend/models"
	"kiosk-signage-backend/services"
	"kiosk-signage-backend/store"
)

// HistoryHandler handles mutation history requests
type HistoryHandler struct {
	history   *store.HistoryStore
	playlists *services.PlaylistService
	logger    *zap.SugaredLogger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history *store.HistoryStore, playlists *services.PlaylistService, logger *zap.SugaredLogger) *HistoryHandler {
	return &HistoryHandler{
		history:   history,
		playlists: playlists,
		logger:    logger,
	}
}

// GetHistory handles GET /api/history
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.history.Recent(r.Context(), h.playlists.KioskID(), limit)
	if err != nil {
		h.logger.Errorw("history query failed", "error", err)
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.MutationRecord{}
	}
	writeJSON(w, records)
}
