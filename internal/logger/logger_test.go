package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToCustomPath(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("cache rebuilt with %d entries", 3)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file failed: %v", err)
	}
	if !strings.Contains(string(data), "cache rebuilt with 3 entries") {
		t.Errorf("log file missing expected message, got: %s", data)
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	SetDebug(false)
	Debug("should not appear")
	SetDebug(true)
	Debug("should appear")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file failed: %v", err)
	}
	if strings.Contains(string(data), "should not appear") {
		t.Error("debug message leaked at info level")
	}
	if !strings.Contains(string(data), "should appear") {
		t.Error("debug message missing at debug level")
	}
}

func TestInitIsIdempotent(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := Init(filepath.Join(t.TempDir(), "other.log")); err != nil {
		t.Fatalf("second Init should be a no-op, got: %v", err)
	}
}
