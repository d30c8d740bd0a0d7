package workload

import (
	"context"
	"io"
	"log/slog"

	"github.com/roach88/hiot/internal/busywait"
	"github.com/roach88/hiot/internal/signal"
	"github.com/roach88/hiot/internal/vitals"
)

// Monitor acquires seeded patient samples and slides a moving-average
// heart-rate filter over each buffer looking for anomalies.
type Monitor struct {
	base
	p MonitorParams
}

// NewMonitor returns the patient monitor workload.
func NewMonitor(p MonitorParams, logger *slog.Logger) *Monitor {
	return &Monitor{base: newBase("monitor", logger), p: p}
}

func (m *Monitor) Banner(w io.Writer) error {
	c := &console{w: w}
	c.println("========================================")
	c.println("Healthcare IoT Patient Monitoring Test")
	c.println("========================================\n")
	return c.err
}

func (m *Monitor) Run(ctx context.Context, w io.Writer) (*Summary, error) {
	if err := m.Banner(w); err != nil {
		return nil, err
	}
	c := &console{w: w}
	p := m.p

	acq := vitals.NewAcquirer(p.Seed)
	samples := make([]vitals.PatientSample, p.BufferSize)
	window := make([]uint16, p.Window)
	var anomalies, windows int64

	c.println("Starting patient monitoring simulation...")
	for iter := 0; iter < p.Iterations; iter++ {
		if err := m.checkpoint(ctx, iter); err != nil {
			return nil, err
		}
		c.printf("Iteration %d: Acquiring sensor data...\n", iter+1)
		acq.Fill(samples, iter)

		before := anomalies
		for i := 0; i+p.Window < len(samples); i++ {
			for j := range window {
				window[j] = samples[i+j].HeartRate
			}
			windows++
			if vitals.IsAnomalous(signal.MovingAverage(window)) {
				anomalies++
			}
		}
		m.logger.Debug("buffer filtered", "iteration", iter, "anomalies", anomalies-before)

		c.printf("Iteration %d complete. Entering idle state...\n", iter+1)
		busywait.Delay(p.IdleSpin)
	}

	processed := int64(p.BufferSize) * int64(p.Iterations)
	c.println("\nMonitoring complete!")
	c.printf("Total samples processed: %d\n", processed)
	c.printf("Anomalies detected: %d\n", anomalies)
	if c.err != nil {
		return nil, c.err
	}

	s := newSummary(m.name)
	s.count("samples_processed", processed)
	s.count("windows_filtered", windows)
	s.count("anomalies", anomalies)
	return s.sealed()
}
