package config

import (
	"os"
	"path/filepath"
	"time"
)

// BuildVersion is the compiled-in build identifier. The version gate compares it
// against the remote descriptor at images/common/version.json and forces a
// restart when they disagree.
const BuildVersion = "1.4.0"

// DefaultKioskID is the fallback tenant used when no kiosk id is configured.
const DefaultKioskID = "common"

// Config holds the application configuration
type Config struct {
	Port                string
	KioskID             string
	MediaDir            string // root of the filesystem object store
	StorageURL          string // remote object store base URL; empty selects the filesystem store
	DBPath              string
	ContentPollInterval time.Duration
	VersionPollInterval time.Duration
	ImageDwell          time.Duration
	NotificationTTL     time.Duration
	Debug               bool
}

// LoadConfig loads the configuration from environment variables or defaults
func LoadConfig() *Config {
	// Get the current working directory
	cwd, _ := os.Getwd()

	// Default to parent directory's media folder
	defaultMediaDir := filepath.Join(filepath.Dir(cwd), "media")
	defaultDBPath := filepath.Join(cwd, "data", "history.db")

	return &Config{
		Port:                getEnv("PORT", "8080"),
		KioskID:             getEnv("KIOSK_ID", DefaultKioskID),
		MediaDir:            getEnv("MEDIA_DIR", defaultMediaDir),
		StorageURL:          getEnv("STORAGE_URL", ""),
		DBPath:              getEnv("DB_PATH", defaultDBPath),
		ContentPollInterval: getDurationEnv("CONTENT_POLL_INTERVAL", 45*time.Second),
		VersionPollInterval: getDurationEnv("VERSION_POLL_INTERVAL", 2*time.Minute),
		ImageDwell:          getDurationEnv("IMAGE_DWELL", 5*time.Second),
		NotificationTTL:     getDurationEnv("NOTIFICATION_TTL", 4*time.Second),
		Debug:               getEnv("DEBUG", "") != "",
	}
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv returns an environment variable parsed as a duration, or a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
