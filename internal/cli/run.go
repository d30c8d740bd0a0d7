package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/roach88/hiot/internal/digest"
	"github.com/roach88/hiot/internal/metrics"
	"github.com/roach88/hiot/internal/profile"
	"github.com/roach88/hiot/internal/runid"
	"github.com/roach88/hiot/internal/store"
	"github.com/roach88/hiot/internal/workload"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	All        bool
	Profile    string
	Seed       uint64
	Database   string
	MetricsOut string
	Quiet      bool

	// IDs overrides the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs runid.Generator

	// Clock overrides the start-time source (for testing).
	Clock runid.Clock
}

// RunReport is the outcome of one workload in a run command.
type RunReport struct {
	RunID            string            `json:"run_id,omitempty"`
	Summary          *workload.Summary `json:"summary"`
	ProfileDigest    string            `json:"profile_digest,omitempty"`
	TranscriptDigest string            `json:"transcript_digest"`
	DurationMS       int64             `json:"duration_ms"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [workload...]",
		Short: "Run workloads",
		Long: `Run one or more workloads in registry order.

Text output streams each workload's console transcript. JSON output prints
one document holding every summary. With --db each run is recorded, and with
--metrics-out the counters are exported as a Prometheus textfile.

Examples:
  hiot run burst ecg
  hiot run --all --profile quick.yaml
  hiot run monitor --seed 42 --format json
  hiot run --all --db runs.db --metrics-out hiot.prom --quiet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkloads(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "run every workload")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "YAML or CUE parameter profile")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "override the monitor workload's PRNG seed")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record runs in this SQLite database")
	cmd.Flags().StringVar(&opts.MetricsOut, "metrics-out", "", "write a Prometheus textfile here")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "print summaries only, not transcripts")

	return cmd
}

// selectWorkloads resolves positional names against the registry, keeping
// registry order and dropping duplicates.
func selectWorkloads(all bool, args []string) ([]string, error) {
	names := workload.Names()
	if all {
		if len(args) > 0 {
			return nil, fmt.Errorf("--all cannot be combined with workload names")
		}
		return names, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no workloads selected (name some of %v or pass --all)", names)
	}
	if unknown := lo.Without(args, names...); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %v (known: %v)", workload.ErrUnknownWorkload, unknown, names)
	}
	return lo.Filter(names, func(n string, _ int) bool { return lo.Contains(args, n) }), nil
}

func loadProfile(opts *RunOptions, seedSet bool) (*profile.Profile, error) {
	prof := profile.Default()
	if opts.Profile != "" {
		var err error
		prof, err = profile.LoadFile(opts.Profile)
		if err != nil {
			return nil, err
		}
	}
	if seedSet {
		prof.Config.Monitor.Seed = opts.Seed
	}
	return prof, nil
}

func runWorkloads(opts *RunOptions, args []string, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	names, err := selectWorkloads(opts.All, args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid workload selection", err).WithCode(ErrCodeBadArgs)
	}

	prof, err := loadProfile(opts, cmd.Flags().Changed("seed"))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid profile", err).WithCode(ErrCodeProfile)
	}
	logger.Debug("profile loaded", "source", prof.Source, "digest", prof.Digest)

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err).WithCode(ErrCodeStore)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
	}

	var m *metrics.Metrics
	if opts.MetricsOut != "" {
		m = metrics.New()
	}

	ids := opts.IDs
	if ids == nil {
		ids = runid.UUIDv7Generator{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = runid.SystemClock{}
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping at next cycle", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	out := cmd.OutOrStdout()
	streaming := opts.Format != "json" && !opts.Quiet
	reports := make([]RunReport, 0, len(names))
	var failures *multierror.Error

	for _, name := range names {
		w, err := workload.New(name, prof.Config, logger)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid workload selection", err).WithCode(ErrCodeBadArgs)
		}

		var transcript bytes.Buffer
		var sink io.Writer = &transcript
		if streaming {
			sink = io.MultiWriter(out, &transcript)
		}

		logger.Info("workload starting", "workload", name)
		startedAt := clock.Now()
		start := time.Now()
		summary, err := w.Run(ctx, sink)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("workload failed", "workload", name, "error", err)
			if m != nil {
				m.ObserveFailure(name)
			}
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", name, err))
			if errors.Is(err, context.Canceled) {
				break
			}
			continue
		}
		if m != nil {
			m.Observe(summary, elapsed)
		}

		report := RunReport{
			Summary:          summary,
			ProfileDigest:    prof.Digest,
			TranscriptDigest: digest.Transcript(transcript.Bytes()),
			DurationMS:       elapsed.Milliseconds(),
		}

		if st != nil {
			report.RunID, err = recordRun(ctx, st, ids.Generate(), report, transcript.Bytes(), startedAt, elapsed)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to record run", err).WithCode(ErrCodeStore)
			}
			logger.Info("run recorded", "workload", name, "run_id", report.RunID)
		}
		reports = append(reports, report)

		if opts.Format != "json" {
			printRunFooter(out, report, streaming)
		}
	}

	if m != nil {
		if err := m.WriteTextfile(opts.MetricsOut); err != nil {
			return WrapExitError(ExitCommandError, "failed to export metrics", err).WithCode(ErrCodeMetricsWrite)
		}
		logger.Info("metrics exported", "path", opts.MetricsOut)
	}

	if err := failures.ErrorOrNil(); err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("%d workload(s) failed", failures.Len()), err).
			WithCode(ErrCodeRunFailed)
	}
	if opts.Format == "json" {
		return formatter(opts.RootOptions, cmd).Success(reports)
	}
	return nil
}

func recordRun(ctx context.Context, st *store.Store, id string, report RunReport, transcript []byte, startedAt time.Time, elapsed time.Duration) (string, error) {
	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	// Record completed work even after an interrupt.
	_, err = st.WriteRun(context.WithoutCancel(ctx), store.Run{
		ID:            id,
		Workload:      report.Summary.Workload,
		Digest:        report.Summary.Digest,
		ProfileDigest: report.ProfileDigest,
		Summary:       summaryJSON,
		Transcript:    transcript,
		StartedAt:     startedAt,
		Duration:      elapsed,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func printRunFooter(w io.Writer, r RunReport, streamed bool) {
	if streamed {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "[%s] digest %s", r.Summary.Workload, r.Summary.Digest)
	if r.RunID != "" {
		fmt.Fprintf(w, " run %s", r.RunID)
	}
	fmt.Fprintln(w)
	if !streamed {
		for _, c := range r.Summary.Counters {
			fmt.Fprintf(w, "  %s=%d\n", c.Name, c.Value)
		}
	}
}
