package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/session-resume/internal/sessions"
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved session",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	svc := sessions.NewService()

	if err := svc.Delete(name); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Printf("Deleted session '%s'\n", name)
	return nil
}

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a saved session",
		Args:  cobra.ExactArgs(2),
		RunE:  runRename,
	}
}

func runRename(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]
	svc := sessions.NewService()

	if err := svc.Rename(oldName, newName); err != nil {
		return fmt.Errorf("failed to rename session: %w", err)
	}

	fmt.Printf("Renamed session '%s' to '%s'\n", oldName, newName)
	return nil
}
