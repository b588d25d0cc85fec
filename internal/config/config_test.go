package config

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "host=localhost user=test password=test dbname=test port=5432 sslmode=disable")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", cfg.APIPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.DisplayTimezone != "Europe/Moscow" {
		t.Errorf("DisplayTimezone = %s, want Europe/Moscow", cfg.DisplayTimezone)
	}
	if cfg.PollRatePerSec != 5 {
		t.Errorf("PollRatePerSec = %d, want 5", cfg.PollRatePerSec)
	}
	if cfg.NotifyMirrorURL != "" {
		t.Errorf("NotifyMirrorURL = %s, want empty", cfg.NotifyMirrorURL)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DISPLAY_TIMEZONE", "Europe/Berlin")
	t.Setenv("POLL_RATE_PER_SEC", "20")
	t.Setenv("NOTIFY_MIRROR_URL", "https://mirror.example.com/hook")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", cfg.APIPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.DisplayTimezone != "Europe/Berlin" {
		t.Errorf("DisplayTimezone = %s, want Europe/Berlin", cfg.DisplayTimezone)
	}
	if cfg.PollRatePerSec != 20 {
		t.Errorf("PollRatePerSec = %d, want 20", cfg.PollRatePerSec)
	}
	if cfg.NotifyMirrorURL != "https://mirror.example.com/hook" {
		t.Errorf("NotifyMirrorURL = %s, want mirror url", cfg.NotifyMirrorURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_DSN", "host=localhost")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required env vars, got nil")
	}
}

func TestLoad_RequiredFields(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DatabaseDSN == "" {
		t.Error("DatabaseDSN should not be empty")
	}
	if cfg.RedisURL == "" {
		t.Error("RedisURL should not be empty")
	}
}
