package workload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/samber/lo"
)

// ErrUnknownWorkload is returned by New for a name not in the registry.
var ErrUnknownWorkload = errors.New("unknown workload")

// Workload is one runnable synthetic program.
type Workload interface {
	Name() string
	Description() string

	// Banner writes the configuration header that opens the transcript.
	Banner(w io.Writer) error

	// Run executes the workload, writing its transcript to w.
	Run(ctx context.Context, w io.Writer) (*Summary, error)
}

type entry struct {
	name        string
	description string
	build       func(Config, *slog.Logger) Workload
	params      func(Config) any
}

// registry lists workloads in their fixed presentation order.
var registry = []entry{
	{"burst", "sensor packets compressed, packetized and sent in bursts between idle periods",
		func(c Config, l *slog.Logger) Workload { return NewBurst(c.Burst, l) },
		func(c Config) any { return c.Burst }},
	{"ecg", "continuous ECG synthesis with QRS detection and heart-rate variability",
		func(c Config, l *slog.Logger) Workload { return NewECG(c.ECG, l) },
		func(c Config) any { return c.ECG }},
	{"idle", "short, medium and long sleep states with watchdog wake-ups",
		func(c Config, l *slog.Logger) Workload { return NewIdle(c.Idle, l) },
		func(c Config) any { return c.Idle }},
	{"mixed", "background monitoring, periodic ECG analysis and transmission on one schedule",
		func(c Config, l *slog.Logger) Workload { return NewMixed(c.Mixed, l) },
		func(c Config) any { return c.Mixed }},
	{"monitor", "seeded vital-sign acquisition with moving-average anomaly detection",
		func(c Config, l *slog.Logger) Workload { return NewMonitor(c.Monitor, l) },
		func(c Config) any { return c.Monitor }},
	{"stress", "matrix, sort, hash and memory kernels at peak load",
		func(c Config, l *slog.Logger) Workload { return NewStress(c.Stress, l) },
		func(c Config) any { return c.Stress }},
}

// Names returns the registered workload names in order.
func Names() []string {
	return lo.Map(registry, func(e entry, _ int) string { return e.name })
}

// Describe returns the one-line description of a workload.
func Describe(name string) (string, error) {
	e, ok := lo.Find(registry, func(e entry) bool { return e.name == name })
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownWorkload, name)
	}
	return e.description, nil
}

// Params returns the parameter block of the named workload within cfg.
func Params(name string, cfg Config) (any, error) {
	e, ok := lo.Find(registry, func(e entry) bool { return e.name == name })
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkload, name)
	}
	return e.params(cfg), nil
}

// New builds the named workload from cfg. A nil logger discards logs.
func New(name string, cfg Config, logger *slog.Logger) (Workload, error) {
	e, ok := lo.Find(registry, func(e entry) bool { return e.name == name })
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownWorkload, name, Names())
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.build(cfg, logger), nil
}

// base holds what every workload shares.
type base struct {
	name   string
	logger *slog.Logger
}

func newBase(name string, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return base{name: name, logger: logger.With("workload", name)}
}

func (b base) Name() string { return b.name }

func (b base) Description() string {
	d, _ := Describe(b.name)
	return d
}

// checkpoint returns a wrapped context error when the run was cancelled.
func (b base) checkpoint(ctx context.Context, cycle int) error {
	if err := ctx.Err(); err != nil {
		b.logger.Info("run interrupted", "cycle", cycle)
		return fmt.Errorf("%s cycle %d: %w", b.name, cycle, err)
	}
	return nil
}
