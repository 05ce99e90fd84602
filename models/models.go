package models

import "time"

// MediaItem represents one playable entry in the kiosk playlist
type MediaItem struct {
	ID          string    `json:"id"` // remote object key, stable identity
	DisplayName string    `json:"displayName"`
	URL         string    `json:"url"` // resolved fetch URL, may change across refreshes
	Kind        MediaKind `json:"kind"`
}

// KioskSession represents the display-mode state of one kiosk
type KioskSession struct {
	KioskID      string `json:"kioskId"`
	Muted        bool   `json:"muted"`
	Fullscreen   bool   `json:"fullscreen"`
	UIVisible    bool   `json:"uiVisible"`
	CurrentIndex int    `json:"currentIndex"`
}

// VersionDescriptor is the remote build identifier fetched from the common area
type VersionDescriptor struct {
	Version string `json:"version"`
}

// Notification is a transient operator-facing message
type Notification struct {
	ID       string `json:"id"`
	Message  string `json:"message"`
	Level    string `json:"level"` // "info" or "error"
	PostedAt int64  `json:"postedAt"`
}

// Notification levels.
const (
	NotifyInfo  = "info"
	NotifyError = "error"
)

// MutationRecord is one row of the durable mutation history
type MutationRecord struct {
	ID        string    `json:"id"`
	KioskID   string    `json:"kioskId"`
	Action    string    `json:"action"` // "upload", "delete" or "reload"
	ObjectKey string    `json:"objectKey"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlaybackStatus describes what the kiosk is currently showing
type PlaybackStatus struct {
	Index int        `json:"index"`
	Count int        `json:"count"`
	Muted bool       `json:"muted"`
	Item  *MediaItem `json:"item,omitempty"`
}

// PlaylistResponse is the payload for GET /api/playlist
type PlaylistResponse struct {
	KioskID string      `json:"kioskId"`
	Items   []MediaItem `json:"items"`
	Loaded  bool        `json:"loaded"`
}
