package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/strrl/session-resume/internal/errors"
	"github.com/strrl/session-resume/internal/resolve"
	"github.com/strrl/session-resume/internal/sessions"
)

var resumeLast bool

// NewResumeCommand creates the resume command
func NewResumeCommand() *cobra.Command {
	resumeCmd := &cobra.Command{
		Use:   "resume [session-or-directory]",
		Short: "Resume a session by name, directory, or recency",
		Long: `Resume a saved session in the editor.
Without arguments: resumes the active session, or the most recent one.
With an argument: if it names an existing directory, resumes the most
recent session saved from it; otherwise it is taken as a session name
(a trailing .json is stripped).
With --last: resumes the most recently saved session overall.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runResume,
	}

	resumeCmd.Flags().BoolVar(&resumeLast, "last", false, "Resume the most recently saved session")
	return resumeCmd
}

func runResume(cmd *cobra.Command, args []string) error {
	svc := sessions.NewService()

	sel, err := resumeSelector(args)
	if err != nil {
		return err
	}

	name, err := svc.Resolve(sel)
	if err != nil {
		// No marker file is the common case for a bare "resume"; fall
		// back to the most recent session before giving up.
		if _, isCurrent := sel.(resolve.Current); isCurrent && apperrors.Is(err, apperrors.KindNoActiveSession) {
			name, err = svc.Resolve(resolve.LastGlobal{})
		}
		if err != nil {
			if apperrors.Is(err, apperrors.KindNotFound) || apperrors.Is(err, apperrors.KindNoActiveSession) {
				return fmt.Errorf("no session to resume: %w", err)
			}
			return err
		}
	}

	record, err := svc.Get(name)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			// Resolution never validates existence; a literal name may
			// not be cached. Resume it anyway and let the launch fail
			// with a concrete message if the file is missing.
			return sessions.ExecuteEditorResume(name, "")
		}
		return err
	}

	return sessions.ExecuteEditorResume(record.Name, record.Cwd)
}

func resumeSelector(args []string) (resolve.Selector, error) {
	if resumeLast {
		if len(args) > 0 {
			return nil, fmt.Errorf("--last cannot be combined with an argument")
		}
		return resolve.LastGlobal{}, nil
	}
	if len(args) == 1 {
		return resolve.LiteralOrDirectory{Value: args[0]}, nil
	}
	return resolve.Current{}, nil
}
