package services

import (
	"go.uber.org/zap"

	"kiosk-signage-backend/models"
)

// LogDisplay is a Display that only logs render decisions. The real pixels
// are painted by the kiosk frontend, which mirrors this state via
// GET /api/playback/current; the backend keeps a log trail of what the
// screen should be showing.
type LogDisplay struct {
	logger *zap.SugaredLogger
}

// NewLogDisplay creates a logging display surface.
func NewLogDisplay(logger *zap.SugaredLogger) *LogDisplay {
	return &LogDisplay{logger: logger}
}

func (d *LogDisplay) ShowImage(item models.MediaItem) {
	d.logger.Infow("display image", "id", item.ID, "url", item.URL)
}

func (d *LogDisplay) ShowVideo(item models.MediaItem, muted bool) {
	d.logger.Infow("display video", "id", item.ID, "url", item.URL, "muted", muted)
}

func (d *LogDisplay) SetMuted(muted bool) {
	d.logger.Infow("display mute", "muted", muted)
}

func (d *LogDisplay) Clear() {
	d.logger.Infow("display cleared, playlist empty")
}
