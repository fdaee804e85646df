package sessions

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/strrl/session-resume/internal/db"
	"github.com/strrl/session-resume/internal/paths"
)

// FetchSessionPreview returns display lines describing what a session
// would restore: its saved buffers, window layout summary, and editor.
// The state payload is read through DuckDB so malformed documents fail
// cleanly rather than half-parsing.
func FetchSessionPreview(name string) ([]string, error) {
	file, err := paths.SessionFile(name)
	if err != nil {
		return nil, err
	}

	database, err := db.GetDB()
	if err != nil {
		return nil, err
	}
	// Don't close the singleton connection

	previewQuery := fmt.Sprintf(`
		SELECT
			to_json(state) as state_json,
			COALESCE(editor, '') as editor,
			COALESCE(savedAt, '') as saved_at
		FROM read_json('%s')
		LIMIT 1
	`, file)

	row := database.QueryRow(previewQuery)
	var stateJSON, editor, savedAt sql.NullString
	if err := row.Scan(&stateJSON, &editor, &savedAt); err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", name, err)
	}

	var lines []string
	if editor.Valid && editor.String != "" {
		lines = append(lines, fmt.Sprintf("Editor: %s", editor.String))
	}
	if savedAt.Valid && savedAt.String != "" {
		lines = append(lines, fmt.Sprintf("Saved: %s", savedAt.String))
	}

	if stateJSON.Valid && stateJSON.String != "" {
		lines = append(lines, formatStatePreview(stateJSON.String)...)
	}

	if len(lines) == 0 {
		lines = append(lines, "No restorable state recorded")
	}
	return lines, nil
}

// formatStatePreview renders the opaque state payload's well-known
// parts. Unknown shapes are simply omitted.
func formatStatePreview(stateJSON string) []string {
	var lines []string

	buffers := gjson.Get(stateJSON, "buffers")
	if buffers.IsArray() {
		entries := buffers.Array()
		lines = append(lines, fmt.Sprintf("Buffers (%d):", len(entries)))
		for i, buf := range entries {
			if i >= 10 {
				lines = append(lines, fmt.Sprintf("  ... and %d more", len(entries)-10))
				break
			}
			path := buf.Get("path").String()
			if path == "" {
				continue
			}
			line := buf.Get("line").Int()
			if line > 0 {
				lines = append(lines, fmt.Sprintf("  %s:%d", filepath.Base(path), line))
			} else {
				lines = append(lines, fmt.Sprintf("  %s", filepath.Base(path)))
			}
		}
	}

	if windows := gjson.Get(stateJSON, "windows"); windows.IsArray() {
		lines = append(lines, fmt.Sprintf("Windows: %d", len(windows.Array())))
	}

	return lines
}
