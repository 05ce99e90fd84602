package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kiosk-signage-backend/models"
)

// NotificationService holds the single transient operator notification.
// Pushing replaces the current one; each auto-dismisses after the TTL.
type NotificationService struct {
	ttl    time.Duration
	logger *zap.SugaredLogger

	mu      sync.Mutex
	current *models.Notification
	gen     uint64
}

// NewNotificationService creates a new notification service
func NewNotificationService(ttl time.Duration, logger *zap.SugaredLogger) *NotificationService {
	return &NotificationService{ttl: ttl, logger: logger}
}

// Push replaces the current notification and arms its dismissal timer.
func (s *NotificationService) Push(level, message string) models.Notification {
	n := models.Notification{
		ID:       uuid.NewString(),
		Message:  message,
		Level:    level,
		PostedAt: time.Now().Unix(),
	}

	s.mu.Lock()
	s.current = &n
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	s.logger.Infow("notification", "level", level, "message", message)
	time.AfterFunc(s.ttl, func() { s.dismiss(gen) })
	return n
}

// Current returns the active notification, or nil once dismissed.
func (s *NotificationService) Current() *models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	n := *s.current
	return &n
}

// dismiss clears the notification unless a newer one replaced it already.
func (s *NotificationService) dismiss(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.current = nil
}
