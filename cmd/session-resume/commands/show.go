package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/session-resume/internal/sessions"
	"github.com/strrl/session-resume/pkg/models"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [directory]",
		Short: "Show directories and sessions without TUI",
		Long: `Show directories and sessions in a non-interactive format.
Without arguments: lists all directories with their sessions
With a directory name or path: lists that directory's sessions`,
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	svc := sessions.NewService()

	switch len(args) {
	case 0:
		return showDirectories(svc)
	case 1:
		return showSessions(svc, args[0])
	default:
		return fmt.Errorf("too many arguments. Usage: session-resume show [directory]")
	}
}

func showDirectories(svc *sessions.Service) error {
	directories, err := svc.Directories()
	if err != nil {
		return fmt.Errorf("failed to fetch directories: %w", err)
	}

	if len(directories) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	fmt.Println("Directories:")
	fmt.Println("============")
	for i, dir := range directories {
		fmt.Printf("%d. %s\n", i+1, dir.Name)
		fmt.Printf("   Path: %s\n", dir.Path)
		fmt.Printf("   Sessions: %d\n", dir.SessionCount)
		fmt.Printf("   Last Saved: %s\n", dir.LastSaved.Format("2006-01-02 15:04"))
		fmt.Println()
	}

	return nil
}

func showSessions(svc *sessions.Service, dirName string) error {
	directories, err := svc.Directories()
	if err != nil {
		return fmt.Errorf("failed to fetch directories: %w", err)
	}

	var target *models.Directory
	for _, dir := range directories {
		if dir.Name == dirName || dir.Path == dirName {
			d := dir
			target = &d
			break
		}
	}

	if target == nil {
		return fmt.Errorf("directory '%s' not found", dirName)
	}

	dirSessions, err := svc.SessionsForDirectory(target.Path)
	if err != nil {
		return fmt.Errorf("failed to fetch sessions: %w", err)
	}

	if len(dirSessions) == 0 {
		fmt.Printf("No sessions found for directory '%s'\n", dirName)
		return nil
	}

	fmt.Printf("Sessions for directory '%s':\n", target.Name)
	fmt.Printf("Path: %s\n", target.Path)
	fmt.Println("===================================")

	for i, session := range dirSessions {
		fmt.Printf("%d. %s\n", i+1, session.Name)
		fmt.Printf("   Saved: %s\n", session.SavedAt.Format("2006-01-02 15:04"))
		if session.Editor != "" {
			fmt.Printf("   Editor: %s\n", session.Editor)
		}
		fmt.Println()
	}

	return nil
}
