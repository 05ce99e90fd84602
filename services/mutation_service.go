package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"

	"kiosk-signage-backend/models"
	"kiosk-signage-backend/storage"
)

// MutationRecorder records mutations for the durable history. Implemented by
// the sqlite history store.
type MutationRecorder interface {
	Record(ctx context.Context, kioskID, action, objectKey string) error
}

// MutationService issues upload and delete calls against the remote store.
// Neither operation touches local state: every mutation is followed by a
// background refresh, and the playlist only ever reflects the next
// successful listing.
type MutationService struct {
	objects   storage.Client
	playlists *PlaylistService
	notify    *NotificationService
	history   MutationRecorder
	logger    *zap.SugaredLogger
}

// NewMutationService creates a new mutation service. history may be nil.
func NewMutationService(objects storage.Client, playlists *PlaylistService, notify *NotificationService, history MutationRecorder, logger *zap.SugaredLogger) *MutationService {
	return &MutationService{
		objects:   objects,
		playlists: playlists,
		notify:    notify,
		history:   history,
		logger:    logger,
	}
}

// Upload writes a file under the kiosk's remote prefix keyed by filename,
// notifies the operator, and kicks an immediate background refresh.
func (s *MutationService) Upload(ctx context.Context, filename, contentType string, r io.Reader) error {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		s.notify.Push(models.NotifyError, "Upload failed: invalid file name")
		return fmt.Errorf("invalid file name %q", filename)
	}

	kioskID := s.playlists.KioskID()
	key := storage.KioskPrefix(kioskID) + "/" + name
	if err := s.objects.Upload(ctx, key, contentType, r); err != nil {
		s.logger.Errorw("upload failed", "key", key, "error", err)
		s.notify.Push(models.NotifyError, fmt.Sprintf("Upload failed: %s", name))
		return err
	}

	s.logger.Infow("uploaded", "key", key)
	s.notify.Push(models.NotifyInfo, fmt.Sprintf("Uploaded %s", name))
	s.record(ctx, kioskID, "upload", key)
	s.playlists.RefreshInBackground()
	return nil
}

// Delete removes the object at the given key, which must sit under the
// kiosk's prefix, then refreshes in the background.
func (s *MutationService) Delete(ctx context.Context, key string) error {
	kioskID := s.playlists.KioskID()
	if !strings.HasPrefix(key, storage.KioskPrefix(kioskID)+"/") {
		s.notify.Push(models.NotifyError, "Delete failed: unknown item")
		return fmt.Errorf("key %q outside kiosk %q", key, kioskID)
	}

	if err := s.objects.Delete(ctx, key); err != nil {
		s.logger.Errorw("delete failed", "key", key, "error", err)
		s.notify.Push(models.NotifyError, fmt.Sprintf("Delete failed: %s", path.Base(key)))
		return err
	}

	s.logger.Infow("deleted", "key", key)
	s.notify.Push(models.NotifyInfo, fmt.Sprintf("Deleted %s", path.Base(key)))
	s.record(ctx, kioskID, "delete", key)
	s.playlists.RefreshInBackground()
	return nil
}

// record writes to the history store, best effort.
func (s *MutationService) record(ctx context.Context, kioskID, action, key string) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, kioskID, action, key); err != nil {
		s.logger.Warnw("history record failed", "action", action, "key", key, "error", err)
	}
}
