package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"kiosk-signage-backend/services"
	"kiosk-signage-backend/storage"
)

// maxUploadBytes caps multipart uploads at 512 MiB.
const maxUploadBytes = 512 << 20

// MediaHandler handles media upload, delete and file serving requests
type MediaHandler struct {
	mutations *services.MutationService
	files     *storage.FSClient // nil when the store is remote
	logger    *zap.SugaredLogger
}

// NewMediaHandler creates a new media handler. files may be nil when media
// bytes are served by the remote store directly.
func NewMediaHandler(mutations *services.MutationService, files *storage.FSClient, logger *zap.SugaredLogger) *MediaHandler {
	return &MediaHandler{
		mutations: mutations,
		files:     files,
		logger:    logger,
	}
}

// Upload handles POST /api/media
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		http.Error(w, "Only image and video uploads are accepted", http.StatusUnsupportedMediaType)
		return
	}

	if err := h.mutations.Upload(r.Context(), header.Filename, contentType, file); err != nil {
		h.logger.Errorw("upload request failed", "filename", header.Filename, "error", err)
		http.Error(w, "Upload failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

// Delete handles DELETE /api/media/{key}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "Object key is required", http.StatusBadRequest)
		return
	}

	if err := h.mutations.Delete(r.Context(), key); err != nil {
		h.logger.Errorw("delete request failed", "key", key, "error", err)
		http.Error(w, "Delete failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

// Serve handles GET /media/{key}, serving object bytes from the filesystem
// store. ServeFile takes care of Range requests for video seeking.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.files == nil {
		http.NotFound(w, r)
		return
	}
	path, err := h.files.Path(mux.Vars(r)["key"])
	if err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	http.ServeFile(w, r, path)
}
