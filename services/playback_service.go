package services

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"kiosk-signage-backend/models"
)

// Display is the rendering surface the playback machine drives. ShowVideo
// restarts the video from its start position with the mute flag applied;
// SetMuted re-applies mute to the currently playing video without restarting
// it. Autoplay rejections are the surface's problem and must not propagate.
type Display interface {
	ShowImage(item models.MediaItem)
	ShowVideo(item models.MediaItem, muted bool)
	SetMuted(muted bool)
	Clear()
}

// PlaybackService advances the current index through the playlist: images
// auto-advance after a fixed dwell, videos advance when the surface reports
// the ended event. The index wraps circularly and runs indefinitely.
type PlaybackService struct {
	display Display
	dwell   time.Duration
	logger  *zap.SugaredLogger

	mu       sync.Mutex
	playlist []models.MediaItem
	index    int
	muted    bool
	timerGen uint64
	timer    *time.Timer
}

// NewPlaybackService creates a new playback service. Playback starts muted;
// unattended displays cannot rely on a prior user interaction for sound.
func NewPlaybackService(display Display, dwell time.Duration, logger *zap.SugaredLogger) *PlaybackService {
	return &PlaybackService{
		display: display,
		dwell:   dwell,
		logger:  logger,
		muted:   true,
	}
}

// SetPlaylist installs a replacement playlist. The reconciler only calls this
// when content actually changed, so re-rendering here never interrupts an
// unchanged item. An index left out of range by a shrink resets to 0.
func (s *PlaybackService) SetPlaylist(items []models.MediaItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist = items
	if s.index >= len(items) {
		s.index = 0
	}
	s.showLocked()
}

// MediaEnded handles the surface's ended event for the current video. Events
// arriving while an image is current are stale and ignored.
func (s *PlaybackService) MediaEnded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.playlist) == 0 || s.playlist[s.index].Kind != models.KindVideo {
		return
	}
	s.advanceLocked()
}

// SetMuted re-applies the mute flag to whichever item is currently showing.
// A current video keeps playing with the flag flipped; a current image
// re-enters its state, restarting the dwell.
func (s *PlaybackService) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
	if len(s.playlist) == 0 {
		return
	}
	if s.playlist[s.index].Kind == models.KindVideo {
		s.display.SetMuted(muted)
		return
	}
	s.showLocked()
}

// Status returns what the kiosk is currently showing.
func (s *PlaybackService) Status() models.PlaybackStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := models.PlaybackStatus{
		Index: s.index,
		Count: len(s.playlist),
		Muted: s.muted,
	}
	if len(s.playlist) > 0 {
		item := s.playlist[s.index]
		status.Item = &item
	}
	return status
}

// Stop cancels any armed dwell timer.
func (s *PlaybackService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimerLocked()
}

func (s *PlaybackService) advanceLocked() {
	s.index = (s.index + 1) % len(s.playlist)
	s.showLocked()
}

// showLocked enters the Showing state for the current index: the previous
// dwell timer is cancelled, the item is handed to the surface, and images
// arm a fresh dwell timer.
func (s *PlaybackService) showLocked() {
	s.cancelTimerLocked()
	if len(s.playlist) == 0 {
		s.display.Clear()
		return
	}
	item := s.playlist[s.index]
	switch item.Kind {
	case models.KindVideo:
		s.logger.Debugw("showing video", "index", s.index, "name", item.DisplayName)
		s.display.ShowVideo(item, s.muted)
	default:
		s.logger.Debugw("showing image", "index", s.index, "name", item.DisplayName)
		s.display.ShowImage(item)
		gen := s.timerGen
		s.timer = time.AfterFunc(s.dwell, func() { s.dwellElapsed(gen) })
	}
}

// dwellElapsed fires when an image's dwell timer expires. The generation
// check makes a timer that was superseded before firing a no-op.
func (s *PlaybackService) dwellElapsed(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.timerGen || len(s.playlist) == 0 {
		return
	}
	s.advanceLocked()
}

func (s *PlaybackService) cancelTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
