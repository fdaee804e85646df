package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/session-resume/internal/sessions"
)

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-directory session statistics",
		Long:  `Aggregate saved sessions by directory: session count and most recent save, most active first.`,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	directories, err := sessions.FetchDirectoriesWithStats()
	if err != nil {
		return fmt.Errorf("failed to aggregate sessions: %w", err)
	}

	if len(directories) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	fmt.Println("Session statistics by directory:")
	fmt.Println("================================")
	for i, dir := range directories {
		fmt.Printf("%d. %s\n", i+1, dir.Path)
		fmt.Printf("   Sessions: %d\n", dir.SessionCount)
		fmt.Printf("   Last Saved: %s\n", dir.LastSaved.Format("2006-01-02 15:04"))
		fmt.Println()
	}

	return nil
}
