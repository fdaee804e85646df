// Package sessions composes the session cache, query engine, and
// resolution engine behind the operations the CLI and TUI call.
package sessions

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	apperrors "github.com/strrl/session-resume/internal/errors"
	"github.com/strrl/session-resume/internal/logger"
	"github.com/strrl/session-resume/internal/paths"
	"github.com/strrl/session-resume/internal/query"
	"github.com/strrl/session-resume/internal/resolve"
	"github.com/strrl/session-resume/internal/store"
	"github.com/strrl/session-resume/pkg/models"
)

// Service owns the cache and the resolver for one process. All commands
// go through a single Service so the "one scan between invalidations"
// guarantee holds across operations.
type Service struct {
	cache    *store.Cache
	resolver *resolve.Resolver
}

// NewService wires the default directory store and the file-based
// active-session provider.
func NewService() *Service {
	return NewServiceWith(store.NewDirStore(), CurrentSessionName)
}

// NewServiceWith wires a custom store and active-session provider,
// used by tests.
func NewServiceWith(lister store.Lister, active resolve.ActiveFunc) *Service {
	cache := store.NewCache(lister)
	return &Service{
		cache:    cache,
		resolver: resolve.New(cache, active),
	}
}

// Invalidate marks the cached listing stale. Called after any action
// that may have changed the backing store.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

// Resolve maps a selector to a single session name.
func (s *Service) Resolve(sel resolve.Selector) (string, error) {
	return s.resolver.Resolve(sel)
}

// Query returns the cached sessions matching the filter, ordered by the
// sort field. The cache snapshot itself is never mutated.
func (s *Service) Query(filter map[string]any, sortField string, descending bool) ([]models.Session, error) {
	records, err := s.cache.Records()
	if err != nil {
		return nil, err
	}

	matched := query.FilterBy(records, filter)
	out := make([]models.Session, len(matched))
	copy(out, matched)
	query.SortBy(out, sortField, descending)
	return out, nil
}

// Directories groups the cached sessions by owning directory, most
// recently saved first.
func (s *Service) Directories() ([]models.Directory, error) {
	records, err := s.cache.Records()
	if err != nil {
		return nil, err
	}

	byPath := make(map[string]*models.Directory)
	var order []string
	for _, record := range records {
		path := record.Cwd
		if path == "" {
			path = "Unknown"
		}
		dir, ok := byPath[path]
		if !ok {
			dir = &models.Directory{Path: path, Name: directoryName(path)}
			byPath[path] = dir
			order = append(order, path)
		}
		dir.SessionCount++
		if record.SavedAt.After(dir.LastSaved) {
			dir.LastSaved = record.SavedAt
		}
	}

	dirs := make([]models.Directory, 0, len(order))
	for _, path := range order {
		dirs = append(dirs, *byPath[path])
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].LastSaved.After(dirs[j].LastSaved)
	})
	return dirs, nil
}

// SessionsForDirectory returns the cached sessions for one directory,
// most recently saved first. The directory may be relative; "Unknown"
// selects sessions with no recorded cwd.
func (s *Service) SessionsForDirectory(dir string) ([]models.Session, error) {
	target := ""
	if dir != "Unknown" {
		abs, err := paths.AbsoluteDir(dir)
		if err != nil {
			return nil, err
		}
		target = abs
	}
	return s.Query(map[string]any{query.FieldCwd: target}, query.FieldMtime, true)
}

// Exists reports whether a session document is present on disk right
// now. Resolution never validates existence, so destructive callers use
// this first.
func (s *Service) Exists(name string) (bool, error) {
	file, err := paths.SessionFile(name)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat session %s: %w", name, err)
	}
	return info.Mode().IsRegular(), nil
}

// Save writes or refreshes the named session's document for the current
// working directory. An existing document keeps its state payload; only
// the header fields are rewritten.
func (s *Service) Save(name string) error {
	file, err := paths.SessionFile(name)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	abs, err := paths.AbsoluteDir(cwd)
	if err != nil {
		return err
	}

	doc := map[string]any{}
	if data, err := os.ReadFile(file); err == nil {
		// Preserve whatever the editor plugin stored.
		if err := json.Unmarshal(data, &doc); err != nil {
			logger.Warn("Service: overwriting unparseable session %s: %v", file, err)
			doc = map[string]any{}
		}
	}

	doc["name"] = name
	doc["cwd"] = abs
	doc["savedAt"] = time.Now().Format(time.RFC3339)
	if editor := os.Getenv(EnvEditor); editor != "" {
		doc["editor"] = editor
	}

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", name, err)
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("failed to write session %s: %w", name, err)
	}

	logger.Info("Service: saved session %s for %s", name, abs)
	s.Invalidate()
	return nil
}

// Delete removes the named session's document.
func (s *Service) Delete(name string) error {
	ok, err := s.Exists(name)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.SessionNotFound(name)
	}

	file, err := paths.SessionFile(name)
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", name, err)
	}

	logger.Info("Service: deleted session %s", name)
	s.Invalidate()
	return nil
}

// Rename moves a session document to a new name, updating the name
// field inside the document. Refuses to clobber an existing session.
func (s *Service) Rename(oldName, newName string) error {
	ok, err := s.Exists(oldName)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.SessionNotFound(oldName)
	}
	taken, err := s.Exists(newName)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.E(apperrors.KindInvalid, fmt.Sprintf("session %q already exists", newName))
	}

	oldFile, err := paths.SessionFile(oldName)
	if err != nil {
		return err
	}
	newFile, err := paths.SessionFile(newName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(oldFile)
	if err != nil {
		return fmt.Errorf("failed to read session %s: %w", oldName, err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err == nil {
		doc["name"] = newName
		if updated, err := json.MarshalIndent(doc, "", "  "); err == nil {
			data = updated
		}
	}

	if err := os.WriteFile(newFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write session %s: %w", newName, err)
	}
	if err := os.Remove(oldFile); err != nil {
		return fmt.Errorf("failed to remove old session %s: %w", oldName, err)
	}

	logger.Info("Service: renamed session %s to %s", oldName, newName)
	s.Invalidate()
	return nil
}

// Get returns the cached record for a named session.
func (s *Service) Get(name string) (models.Session, error) {
	records, err := s.Query(map[string]any{query.FieldName: name}, query.FieldMtime, true)
	if err != nil {
		return models.Session{}, err
	}
	if len(records) == 0 {
		return models.Session{}, apperrors.SessionNotFound(name)
	}
	return records[0], nil
}

// directoryName extracts a display name from a directory path.
func directoryName(path string) string {
	if path == "Unknown" || path == "" {
		return "Unknown"
	}
	return filepath.Base(path)
}
