package models

import "time"

// Session represents one persisted workspace session.
type Session struct {
	Name    string    // human-chosen session name, unique among listed sessions
	Cwd     string    // absolute directory the session was saved from
	SavedAt time.Time // mtime of the backing file, used for recency ordering
	FileID  string    // identity of the backing file (absolute path)
	Editor  string    // editor that wrote the session, when recorded
}

// Directory represents a working directory with aggregated session information.
type Directory struct {
	Name         string
	Path         string
	SessionCount int
	LastSaved    time.Time
	Sessions     []Session // Lazily loaded when needed
}
