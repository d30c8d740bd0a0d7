package workload

import (
	"context"
	"io"
	"log/slog"

	"github.com/roach88/hiot/internal/busywait"
)

// Idle cycles through short, medium and long sleep states, two cycles each.
type Idle struct {
	base
	p IdleParams
}

// NewIdle returns the idle-state workload.
func NewIdle(p IdleParams, logger *slog.Logger) *Idle {
	return &Idle{base: newBase("idle", logger), p: p}
}

func (d *Idle) Banner(w io.Writer) error {
	c := &console{w: w}
	c.println("=== Idle Power Analysis Workload ===")
	c.printf("Test Cycles: %d\n", d.p.Cycles)
	c.printf("Short Idle Duration: %d iterations\n", d.p.ShortDuration)
	c.printf("Medium Idle Duration: %d iterations\n", d.p.MediumDuration)
	c.printf("Long Idle Duration: %d iterations\n\n", d.p.LongDuration)
	return c.err
}

func (d *Idle) Run(ctx context.Context, w io.Writer) (*Summary, error) {
	if err := d.Banner(w); err != nil {
		return nil, err
	}
	c := &console{w: w}
	p := d.p

	var short, medium, long, checks, total, latency int64
	c.println("Beginning idle power analysis...\n")

	for cycle := 0; cycle < p.Cycles; cycle++ {
		if err := d.checkpoint(ctx, cycle); err != nil {
			return nil, err
		}
		switch cycle % 6 {
		case 0, 1:
			c.printf("Cycle %d: Short idle (%d iter)...\n", cycle+1, p.ShortDuration)
			_, n := busywait.Sleep(p.ShortDuration, p.WatchdogInterval)
			short++
			total += int64(p.ShortDuration)
			checks += int64(n)
		case 2, 3:
			c.printf("Cycle %d: Medium idle (%d iter)...\n", cycle+1, p.MediumDuration)
			_, n := busywait.Sleep(p.MediumDuration, p.WatchdogInterval*5)
			medium++
			total += int64(p.MediumDuration)
			checks += int64(n)
		default:
			c.printf("Cycle %d: Long idle (%d iter)...\n", cycle+1, p.LongDuration)
			busywait.DeepSleep(p.LongDuration)
			long++
			total += int64(p.LongDuration)
		}
		d.logger.Debug("sleep complete", "cycle", cycle, "state", cycle%6/2)

		latency = int64(busywait.WakeUp())
		if (cycle+1)%p.ReportEvery == 0 {
			c.printf("  Wake latency: %d cycles\n", latency)
		}
	}

	cycles := int64(p.Cycles)
	c.println("\n=== Idle Power Analysis Complete ===")
	c.printf("Short Idle Periods: %d\n", short)
	c.printf("Medium Idle Periods: %d\n", medium)
	c.printf("Long Idle Periods: %d\n", long)
	c.printf("Total Idle Iterations: %d\n", total)
	c.printf("Watchdog Checks: %d\n", checks)
	c.printf("Average Iterations per Cycle: %d\n", total/cycles)
	c.println("\nIdle Pattern Distribution:")
	c.printf("  Short: %.1f%%\n", pct(short, cycles))
	c.printf("  Medium: %.1f%%\n", pct(medium, cycles))
	c.printf("  Long: %.1f%%\n", pct(long, cycles))
	if c.err != nil {
		return nil, c.err
	}

	s := newSummary(d.name)
	s.count("short_idle", short)
	s.count("medium_idle", medium)
	s.count("long_idle", long)
	s.count("watchdog_checks", checks)
	s.count("total_idle_iterations", total)
	s.count("wake_latency", latency)
	s.ratio("short_pct", pct(short, cycles))
	s.ratio("medium_pct", pct(medium, cycles))
	s.ratio("long_pct", pct(long, cycles))
	return s.sealed()
}
