// Package paths maps session names and directories to canonical
// filesystem locations. All functions are pure apart from reading the
// environment and the process working directory.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// SessionExt is the extension carried by every session document.
const SessionExt = ".json"

// EnvSessionsDir overrides the default sessions directory when set.
const EnvSessionsDir = "WORKSPACE_SESSIONS_DIR"

// SessionsDir returns the backing directory holding session documents.
func SessionsDir() (string, error) {
	if dir := os.Getenv(EnvSessionsDir); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".workspace-sessions"), nil
}

// SessionFile returns the path of the document backing the named session.
func SessionFile(name string) (string, error) {
	dir, err := SessionsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+SessionExt), nil
}

// CurrentFile returns the path of the marker file recording the session
// currently open in the editor.
func CurrentFile() (string, error) {
	dir, err := SessionsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "current"), nil
}

// AbsoluteDir canonicalizes a possibly-relative directory path against
// the process working directory.
func AbsoluteDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}
