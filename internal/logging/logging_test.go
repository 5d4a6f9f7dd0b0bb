package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/prepiz/internal/config"
)

func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "prepiz.log")
	var console bytes.Buffer

	logger, err := New(config.LogConfig{File: path, Level: "info", MaxSizeMB: 1}, Options{Console: &console})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("attempt saved")
	logger.Warn("slow query")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("file lines = %d, want 2:\n%s", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if entry["msg"] != "attempt saved" || entry["level"] != "INFO" {
		t.Errorf("entry = %v", entry)
	}

	if strings.Contains(console.String(), "attempt saved") {
		t.Error("info reached the console")
	}
	if !strings.Contains(console.String(), "slow query") {
		t.Error("warning missing from console")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"}, Options{})
	if err == nil {
		t.Fatal("expected error")
	}
}
