package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Server.Port)
	}
	if cfg.Sync.PhaseDelay() != 900*time.Millisecond {
		t.Fatalf("unexpected phase delay: %v", cfg.Sync.PhaseDelay())
	}
	if cfg.Tracking.Schedule != "*/30 * * * *" {
		t.Fatalf("unexpected tracking schedule: %s", cfg.Tracking.Schedule)
	}
	if cfg.Tracking.Simulate {
		t.Fatalf("simulated tracking should be off by default")
	}
	if cfg.S3.Enabled() {
		t.Fatalf("s3 should be disabled without a bucket")
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || !cfg.CORS.AllowCredentials {
		t.Fatalf("unexpected cors defaults: %+v", cfg.CORS)
	}
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SYNC_PHASE_DELAY_MS", "10")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("env port not applied: %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("env driver not applied: %s", cfg.Database.Driver)
	}
	if cfg.Sync.PhaseDelay() != 10*time.Millisecond {
		t.Fatalf("env phase delay not applied: %v", cfg.Sync.PhaseDelay())
	}
	if !cfg.Redis.Enabled {
		t.Fatalf("env redis flag not applied")
	}
}

func TestLoadConfigReadsYamlFile(t *testing.T) {
	dir := t.TempDir()
	content := "server:\n  mode: release\ns3:\n  bucket: parcels\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Server.Mode != "release" {
		t.Fatalf("yaml mode not applied: %s", cfg.Server.Mode)
	}
	if !cfg.S3.Enabled() {
		t.Fatalf("yaml bucket should enable s3")
	}
}
