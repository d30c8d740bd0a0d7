package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/hiot/internal/profile"
	"github.com/roach88/hiot/internal/workload"
)

// Harness executes scenarios. Workloads are deterministic, so a scenario
// produces the same transcript and digest on every run.
type Harness struct {
	logger *slog.Logger
}

// New returns a harness logging to logger, or discarding logs when nil.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with logs discarded.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	return New(nil).Run(ctx, scenario)
}

// Run executes a scenario and evaluates its assertions.
//
// Execution flow:
// 1. Validate the profile overrides against the profile schema
// 2. Build the workload from the resulting configuration
// 3. Run it, capturing the transcript
// 4. Evaluate assertions against the summary and transcript
//
// A returned error means the scenario could not run. Failed assertions are
// reported through Result.Pass and Result.Errors instead.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	log := h.logger.With("scenario", scenario.Name)

	prof, err := profile.FromOverrides("scenario "+scenario.Name, scenario.Profile)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	w, err := workload.New(scenario.Workload, prof.Config, h.logger)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	log.Debug("running scenario", "workload", scenario.Workload, "profile_digest", prof.Digest)
	var out bytes.Buffer
	summary, err := w.Run(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: run %s: %w", scenario.Name, scenario.Workload, err)
	}

	result := NewResult(scenario.Name)
	result.Summary = summary
	result.Transcript = out.String()
	result.ProfileDigest = prof.Digest

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	log.Info("scenario finished", "pass", result.Pass, "failures", len(result.Errors))
	return result, nil
}
