package sessions

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/strrl/session-resume/internal/logger"
	"github.com/strrl/session-resume/internal/paths"
)

// ExecuteEditorResume changes to the session's directory and launches
// the editor with the session document. The editor plugin is
// responsible for restoring the actual state.
func ExecuteEditorResume(name string, cwd string) error {
	file, err := paths.SessionFile(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("session %q has no backing file: %w", name, err)
	}

	// Change to the session's directory first
	if cwd != "" && cwd != "Unknown" {
		if err := os.Chdir(cwd); err != nil {
			return fmt.Errorf("failed to change to session directory %s: %w", cwd, err)
		}
	}

	editorPath, err := findEditor()
	if err != nil {
		return err
	}

	logger.Info("Launch: resuming session %s with %s", name, editorPath)
	cmd := exec.Command(editorPath, "--load", file)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// findEditor locates the editor executable: the env override, then
// PATH, then common installation locations.
func findEditor() (string, error) {
	editor := os.Getenv(EnvEditor)
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "nvim"
	}

	if path, err := exec.LookPath(editor); err == nil {
		return path, nil
	}

	homeDir, _ := os.UserHomeDir()
	possiblePaths := []string{
		filepath.Join(homeDir, ".local", "bin", editor),
		filepath.Join("/usr/local/bin", editor),
		filepath.Join("/opt/homebrew/bin", editor),
	}
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("editor %q not found in PATH", editor)
}
