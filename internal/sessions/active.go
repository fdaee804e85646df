package sessions

import (
	"os"
	"strings"

	"github.com/strrl/session-resume/internal/paths"
)

// EnvEditor names the editor command used to load sessions. EDITOR is
// consulted as a fallback.
const EnvEditor = "SESSION_RESUME_EDITOR"

// CurrentSessionName reports the session currently open in the editor,
// read from the current marker file the editor plugin maintains. A
// missing or empty marker means no active session.
func CurrentSessionName() (string, bool) {
	file, err := paths.CurrentFile()
	if err != nil {
		return "", false
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", false
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", false
	}
	return name, true
}
