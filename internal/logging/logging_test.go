package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, Config{Level: "warn", Format: "json"})
	logger.Info("hidden")
	logger.Warn("field degraded", "match_id", "AbCd1234")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "field degraded" || entry["match_id"] != "AbCd1234" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fscraper.log")
	logger, closer, err := New(Config{File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("started")
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
