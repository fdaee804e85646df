package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/session-resume/internal/sessions"
)

// NewDebugCommand creates the debug-session command
func NewDebugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug-session <name>",
		Short: "Debug a specific session to see raw data",
		Args:  cobra.ExactArgs(1),
		RunE:  runDebugSession,
	}
}

func runDebugSession(cmd *cobra.Command, args []string) error {
	name := args[0]
	svc := sessions.NewService()

	fmt.Printf("Debugging session: %s\n", name)
	fmt.Println("==========================================")

	record, err := svc.Get(name)
	if err != nil {
		fmt.Printf("No cached record: %v\n", err)
	} else {
		fmt.Printf("Name:    %s\n", record.Name)
		fmt.Printf("Cwd:     %s\n", record.Cwd)
		fmt.Printf("Saved:   %s\n", record.SavedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("File:    %s\n", record.FileID)
		if record.Editor != "" {
			fmt.Printf("Editor:  %s\n", record.Editor)
		}
	}

	lines, err := sessions.FetchSessionPreview(name)
	if err != nil {
		return fmt.Errorf("failed to load session document: %w", err)
	}

	if len(lines) == 0 {
		fmt.Println("\nNo previewable state in this session")
	} else {
		fmt.Printf("\nDocument state (%d lines):\n", len(lines))
		for _, line := range lines {
			fmt.Printf("  %s\n", line)
		}
	}

	return nil
}
