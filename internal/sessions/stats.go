package sessions

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/strrl/session-resume/internal/db"
	"github.com/strrl/session-resume/internal/paths"
	"github.com/strrl/session-resume/pkg/models"
)

// FetchDirectoriesWithStats aggregates the session documents per
// directory with a single DuckDB pass over the store. Unlike
// Service.Directories this always reads the live store, making it the
// right view for ad-hoc reporting.
func FetchDirectoriesWithStats() ([]models.Directory, error) {
	sessionsDir, err := paths.SessionsDir()
	if err != nil {
		return nil, err
	}
	globPattern := filepath.Join(sessionsDir, "*"+paths.SessionExt)

	database, err := db.GetDB()
	if err != nil {
		return nil, err
	}
	// Don't close the singleton connection

	// Single pass over the documents with direct aggregation
	statsQuery := fmt.Sprintf(`
		SELECT
			COALESCE(cwd, 'Unknown') as dir_path,
			COUNT(*) as session_count,
			MAX(savedAt) as last_saved
		FROM read_json('%s',
			union_by_name = true,
			filename = true
		)
		GROUP BY cwd
		ORDER BY MAX(savedAt) DESC
		LIMIT 100
	`, globPattern)

	rows, err := database.Query(statsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to execute stats query: %w", err)
	}
	defer rows.Close()

	var dirs []models.Directory
	for rows.Next() {
		var dir models.Directory
		var lastSaved sql.NullString

		if err := rows.Scan(&dir.Path, &dir.SessionCount, &lastSaved); err != nil {
			continue
		}

		if dir.Path == "Unknown" || dir.Path == "" {
			dir.Name = "Unknown"
		} else {
			dir.Name = filepath.Base(dir.Path)
		}

		if lastSaved.Valid {
			if t, err := time.Parse(time.RFC3339, lastSaved.String); err == nil {
				dir.LastSaved = t.Local()
			}
		}

		dirs = append(dirs, dir)
	}

	return dirs, nil
}
