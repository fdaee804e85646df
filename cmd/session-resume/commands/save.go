package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/session-resume/internal/sessions"
)

// NewSaveCommand creates the save command
func NewSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save or refresh a session for the current directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSave,
	}
}

func runSave(cmd *cobra.Command, args []string) error {
	name := args[0]
	svc := sessions.NewService()

	if err := svc.Save(name); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Printf("Saved session '%s'\n", name)
	return nil
}
