package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Errorf("default port = %q", cfg.Port)
	}
	if cfg.KioskID != DefaultKioskID {
		t.Errorf("default kiosk = %q", cfg.KioskID)
	}
	if cfg.ImageDwell != 5*time.Second {
		t.Errorf("default dwell = %v", cfg.ImageDwell)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("KIOSK_ID", "lobby")
	t.Setenv("CONTENT_POLL_INTERVAL", "10s")
	t.Setenv("VERSION_POLL_INTERVAL", "bogus")

	cfg := LoadConfig()
	if cfg.KioskID != "lobby" {
		t.Errorf("kiosk = %q", cfg.KioskID)
	}
	if cfg.ContentPollInterval != 10*time.Second {
		t.Errorf("content poll = %v", cfg.ContentPollInterval)
	}
	if cfg.VersionPollInterval != 2*time.Minute {
		t.Errorf("unparseable duration must fall back to default, got %v", cfg.VersionPollInterval)
	}
}
