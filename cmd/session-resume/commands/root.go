package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strrl/session-resume/internal/logger"
	"github.com/strrl/session-resume/internal/sessions"
	"github.com/strrl/session-resume/internal/tui"
	"github.com/strrl/session-resume/pkg/models"
)

var debugMode bool

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "session-resume",
		Short: "Browse and resume saved workspace sessions",
		Long:  `session-resume is a TUI application for browsing and resuming saved workspace sessions.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetDebug(debugMode)
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Run in debug mode (list sessions without TUI)")
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewResumeCommand())
	rootCmd.AddCommand(NewSaveCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewRenameCommand())
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewDebugCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	defer logger.Close()

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	svc := sessions.NewService()
	directories, err := svc.Directories()
	if err != nil {
		return fmt.Errorf("failed to fetch directories: %w", err)
	}

	if len(directories) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	// Debug mode: just list directories and sessions without TUI
	if debugMode {
		return runDebugMode(svc, directories)
	}

	selectedSession, err := tui.ShowTUI(svc, directories)
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if selectedSession == nil {
		return nil
	}

	return sessions.ExecuteEditorResume(selectedSession.Name, selectedSession.Cwd)
}

func runDebugMode(svc *sessions.Service, directories []models.Directory) error {
	fmt.Println("=== Debug Mode: Directories and Sessions ===")
	for i, dir := range directories {
		fmt.Printf("\n%d. Directory: %s\n", i+1, dir.Name)
		fmt.Printf("   Path: %s\n", dir.Path)
		fmt.Printf("   Sessions: %d\n", dir.SessionCount)
		fmt.Printf("   Last Saved: %s\n", dir.LastSaved.Format("2006-01-02 15:04"))

		if i == 0 {
			// Load sessions for the first directory as an example
			dirSessions, err := svc.SessionsForDirectory(dir.Path)
			if err != nil {
				fmt.Printf("   Error loading sessions: %v\n", err)
				continue
			}

			fmt.Println("   Sample sessions:")
			for j, session := range dirSessions {
				if j >= 3 { // Only show first 3 sessions
					break
				}
				fmt.Printf("   - %s (saved %s)\n",
					session.Name,
					session.SavedAt.Format("2006-01-02 15:04"))
			}
		}
	}
	return nil
}
