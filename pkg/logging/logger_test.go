package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"storyweave/pkg/config"
)

func TestInit(t *testing.T) {
	tempDir := t.TempDir()
	serverLog := filepath.Join(tempDir, "server.log")
	requestLog := filepath.Join(tempDir, "requests.log")

	cfg := &config.LogConfig{
		Server: config.LogSettings{
			Path:  serverLog,
			Level: "DEBUG",
		},
		Requests: config.LogSettings{
			Path:  requestLog,
			Level: "INFO",
		},
	}

	cleanup, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer cleanup()

	if _, err := os.Stat(serverLog); os.IsNotExist(err) {
		t.Error("Server log file not created")
	}
	if _, err := os.Stat(requestLog); os.IsNotExist(err) {
		t.Error("Request log file not created")
	}

	if RequestLogger == nil {
		t.Error("RequestLogger was not initialized")
	}
}

func TestInit_RotatesExisting(t *testing.T) {
	tempDir := t.TempDir()
	serverLog := filepath.Join(tempDir, "server.log")

	if err := os.WriteFile(serverLog, []byte("previous run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.LogConfig{
		Server:   config.LogSettings{Path: serverLog, Level: "INFO"},
		Requests: config.LogSettings{Path: filepath.Join(tempDir, "requests.log"), Level: "INFO"},
	}

	cleanup, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer cleanup()

	old, err := os.ReadFile(serverLog + ".old")
	if err != nil {
		t.Fatalf("rotated file missing: %v", err)
	}
	if string(old) != "previous run\n" {
		t.Errorf("rotated content mismatch: %q", old)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
