package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"packtrack-service/config"
)

func TestNewLoggerReleaseWritesToConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger("release", config.LogConfig{Directory: dir, Filename: "release.log"})
	if err != nil {
		t.Fatalf("new logger failed: %v", err)
	}
	logger.Info("release-log-test")
	_ = logger.Sync()

	content, err := os.ReadFile(filepath.Join(dir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	if !strings.Contains(string(content), "release-log-test") {
		t.Fatalf("expected log content to contain message, got=%s", string(content))
	}
}

func TestNewLoggerDebugDoesNotWriteFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger("debug", config.LogConfig{Directory: dir, Filename: "debug.log"})
	if err != nil {
		t.Fatalf("new logger failed: %v", err)
	}
	logger.Info("debug-log-test")

	if _, err := os.Stat(filepath.Join(dir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}
