package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/strrl/session-resume/internal/errors"
)

// writeSession creates a session document and pins its mtime.
func writeSession(t *testing.T, dir, name, cwd string, savedAt time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name+".json")
	doc := fmt.Sprintf(`{"name":%q,"cwd":%q,"editor":"nvim","state":{"buffers":[]}}`, name, cwd)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing session doc failed: %v", err)
	}
	if err := os.Chtimes(path, savedAt, savedAt); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}
	return path
}

func TestListReadsSessionRecords(t *testing.T) {
	dir := t.TempDir()
	savedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	writeSession(t, dir, "api-work", "/home/u/api", savedAt)

	s := &DirStore{Dir: dir}
	records, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	for id, record := range records {
		if record.Name != "api-work" {
			t.Errorf("Name = %q, want api-work", record.Name)
		}
		if record.Cwd != "/home/u/api" {
			t.Errorf("Cwd = %q, want /home/u/api", record.Cwd)
		}
		if !record.SavedAt.Equal(savedAt) {
			t.Errorf("SavedAt = %v, want %v", record.SavedAt, savedAt)
		}
		if record.FileID != id {
			t.Errorf("record keyed by %q but FileID is %q", id, record.FileID)
		}
		if record.Editor != "nvim" {
			t.Errorf("Editor = %q, want nvim", record.Editor)
		}
	}
}

func TestListSkipsUnreadableEntries(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "good", "/p", time.Now())

	// Not valid JSON: skipped, not fatal.
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{oops"), 0644); err != nil {
		t.Fatalf("writing broken doc failed: %v", err)
	}
	// Wrong extension: ignored entirely.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("writing stray file failed: %v", err)
	}

	s := &DirStore{Dir: dir}
	records, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected only the readable record, got %d", len(records))
	}
}

func TestListMissingDirectoryIsEmpty(t *testing.T) {
	s := &DirStore{Dir: filepath.Join(t.TempDir(), "does-not-exist")}
	records, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty store, got %d records", len(records))
	}
}

func TestListTotalFailureIsFatal(t *testing.T) {
	// A regular file in place of the sessions directory makes
	// enumeration fail outright.
	dir := t.TempDir()
	notADir := filepath.Join(dir, "sessions")
	if err := os.WriteFile(notADir, []byte(""), 0644); err != nil {
		t.Fatalf("writing file failed: %v", err)
	}

	s := &DirStore{Dir: notADir}
	_, err := s.List()
	if err == nil {
		t.Fatal("expected an error when the store cannot be enumerated")
	}
	if !apperrors.Is(err, apperrors.KindStoreUnavailable) {
		t.Errorf("expected KindStoreUnavailable, got %v", err)
	}
}
