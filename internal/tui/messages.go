package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/strrl/session-resume/internal/sessions"
	"github.com/strrl/session-resume/pkg/models"
)

// Message types for async operations
type (
	// PreviewLoadedMsg delivers a finished session preview load
	PreviewLoadedMsg struct {
		Name  string
		Lines []string
		Error error
	}

	// RefreshedMsg delivers a rebuilt directory listing after an
	// explicit cache invalidation
	RefreshedMsg struct {
		Directories []models.Directory
		Error       error
	}

	// SpinnerTickMsg advances the loading spinner
	SpinnerTickMsg struct{}
)

// loadPreviewCmd starts an async preview load through the executor and
// waits for its result.
func loadPreviewCmd(executor *sessions.Executor, name string) (string, tea.Cmd) {
	requestID, resultChan := executor.FetchPreview(context.Background(), name)

	return requestID, func() tea.Msg {
		result, ok := <-resultChan
		if !ok {
			// Cancelled; no state change.
			return nil
		}
		return PreviewLoadedMsg{Name: result.Name, Lines: result.Lines, Error: result.Err}
	}
}

// refreshCmd invalidates the cache and rebuilds the directory listing.
func refreshCmd(svc *sessions.Service) tea.Cmd {
	return func() tea.Msg {
		svc.Invalidate()
		dirs, err := svc.Directories()
		return RefreshedMsg{Directories: dirs, Error: err}
	}
}

// spinnerTickCmd schedules the next spinner frame.
func spinnerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}
