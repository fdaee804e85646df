// Package store reads the backing sessions directory and caches the
// result between explicit invalidations.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	apperrors "github.com/strrl/session-resume/internal/errors"
	"github.com/strrl/session-resume/internal/logger"
	"github.com/strrl/session-resume/internal/paths"
	"github.com/strrl/session-resume/pkg/models"
)

// Lister enumerates every discoverable session in the backing store.
// Unreadable entries are omitted; only a total enumeration failure is an
// error.
type Lister interface {
	List() (map[string]models.Session, error)
}

// DirStore reads session documents from a single flat directory.
// Stateless per call.
type DirStore struct {
	// Dir overrides the sessions directory when non-empty, used by tests.
	Dir string
}

// NewDirStore returns a store reading the default sessions directory.
func NewDirStore() *DirStore {
	return &DirStore{}
}

func (s *DirStore) dir() (string, error) {
	if s.Dir != "" {
		return s.Dir, nil
	}
	return paths.SessionsDir()
}

// List scans the sessions directory once and returns a record for every
// readable session document, keyed by file identity. A missing directory
// is an empty store, not an error.
func (s *DirStore) List() (map[string]models.Session, error) {
	dir, err := s.dir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.Session{}, nil
		}
		return nil, apperrors.StoreUnavailable(dir, err)
	}

	records := make(map[string]models.Session)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, paths.SessionExt) {
			continue
		}

		path := filepath.Join(dir, name)
		record, err := readRecord(path, entry)
		if err != nil {
			logger.Warn("Store: skipping unreadable session %s: %v", path, err)
			continue
		}
		records[record.FileID] = record
	}

	logger.Debug("Store: listed %d sessions from %s", len(records), dir)
	return records, nil
}

// readRecord builds a session record from one document. Only the header
// fields needed for query and sort are extracted; the state payload is
// opaque to us.
func readRecord(path string, entry os.DirEntry) (models.Session, error) {
	info, err := entry.Info()
	if err != nil {
		return models.Session{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Session{}, err
	}
	if !gjson.ValidBytes(data) {
		return models.Session{}, apperrors.E(apperrors.KindInvalid, "not a valid session document")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{
		Name:    strings.TrimSuffix(entry.Name(), paths.SessionExt),
		Cwd:     gjson.GetBytes(data, "cwd").String(),
		SavedAt: info.ModTime(),
		FileID:  abs,
		Editor:  gjson.GetBytes(data, "editor").String(),
	}, nil
}
