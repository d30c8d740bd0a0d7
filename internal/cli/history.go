package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/hiot/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Workload string
}

// RunRecord is a recorded run as shown by history and show.
type RunRecord struct {
	Seq           int64           `json:"seq"`
	ID            string          `json:"id"`
	Workload      string          `json:"workload"`
	Digest        string          `json:"digest"`
	ProfileDigest string          `json:"profile_digest,omitempty"`
	StartedAt     string          `json:"started_at"`
	DurationMS    int64           `json:"duration_ms"`
	Summary       json.RawMessage `json:"summary,omitempty"`
	Transcript    string          `json:"transcript,omitempty"`
}

func newRunRecord(r store.Run) RunRecord {
	rec := RunRecord{
		Seq:           r.Seq,
		ID:            r.ID,
		Workload:      r.Workload,
		Digest:        r.Digest,
		ProfileDigest: r.ProfileDigest,
		StartedAt:     r.StartedAt.UTC().Format(time.RFC3339),
		DurationMS:    r.Duration.Milliseconds(),
	}
	if json.Valid(r.Summary) {
		rec.Summary = json.RawMessage(r.Summary)
	}
	return rec
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded with "hiot run --db", oldest first.

Examples:
  hiot history --db runs.db
  hiot history --db runs.db --workload ecg --format json`,
		Args: exitArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Workload, "workload", "", "only list runs of this workload")

	return cmd
}

// openExisting opens a run store that must already exist.
func openExisting(path string) (*store.Store, error) {
	if path == "" {
		return nil, NewExitError(ExitCommandError, "--db is required").WithCode(ErrCodeBadArgs)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, WrapExitError(ExitCommandError, "database not found", err).WithCode(ErrCodeNotFound)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err).WithCode(ErrCodeStore)
	}
	return st, nil
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), opts.Workload)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err).WithCode(ErrCodeStore)
	}

	records := make([]RunRecord, 0, len(runs))
	for _, r := range runs {
		records = append(records, newRunRecord(r))
	}

	if opts.Format == "json" {
		return formatter(opts.RootOptions, cmd).Success(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tWORKLOAD\tDIGEST\tSTARTED\tDURATION")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%dms\n", r.Seq, r.ID, r.Workload, shortDigest(r.Digest), r.StartedAt, r.DurationMS)
	}
	return tw.Flush()
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
