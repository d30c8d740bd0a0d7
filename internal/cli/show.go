package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hiot/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a recorded transcript",
		Long: `Print the console transcript of a recorded run. JSON output also
includes the run's summary and digests.

Example:
  hiot show --db runs.db 01890a5d-ac96-774b-bcce-b302099a8057`,
		Args: exitArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")

	return cmd
}

func runShow(opts *ShowOptions, id string, cmd *cobra.Command) error {
	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := st.ReadRun(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return WrapExitError(ExitCommandError, "no such run", err).WithCode(ErrCodeNotFound)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err).WithCode(ErrCodeStore)
	}

	if opts.Format == "json" {
		rec := newRunRecord(r)
		rec.Transcript = string(r.Transcript)
		return formatter(opts.RootOptions, cmd).Success(rec)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), string(r.Transcript))
	return err
}
