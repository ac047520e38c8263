package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("MEDIA_ROOT", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("MEDIA_RETENTION_DAYS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.AppEnv != "development" {
		t.Fatalf("AppEnv = %q, want development", cfg.AppEnv)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MediaRoot != "./uploads/media" {
		t.Fatalf("MediaRoot = %q", cfg.MediaRoot)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Fatalf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 32<<20)
	}
	if cfg.RetentionDays != 90 {
		t.Fatalf("RetentionDays = %d, want 90", cfg.RetentionDays)
	}
	if cfg.HTTPReadTimeout != 15*time.Second {
		t.Fatalf("HTTPReadTimeout = %v", cfg.HTTPReadTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("AllowedOrigins = %#v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("MEDIA_ROOT", "/srv/media")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("MEDIA_RETENTION_DAYS", "7")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://mag.example.com, https://admin.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MediaRoot != "/srv/media" {
		t.Fatalf("MediaRoot = %q", cfg.MediaRoot)
	}
	if cfg.MaxUploadBytes != 8<<20 {
		t.Fatalf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.RetentionDays != 7 {
		t.Fatalf("RetentionDays = %d", cfg.RetentionDays)
	}
	want := []string{"https://mag.example.com", "https://admin.example.com"}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != want[0] || cfg.AllowedOrigins[1] != want[1] {
		t.Fatalf("AllowedOrigins = %#v, want %#v", cfg.AllowedOrigins, want)
	}
}

func TestLoadConfigRejectsNonPositiveUpload(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "0")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for MAX_UPLOAD_MB=0")
	}
}

func TestLoadConfigRejectsNonPositiveRetention(t *testing.T) {
	t.Setenv("MEDIA_RETENTION_DAYS", "-3")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for negative retention")
	}
}
