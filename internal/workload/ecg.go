package workload

import (
	"context"
	"io"
	"log/slog"

	"github.com/roach88/hiot/internal/signal"
)

// ECG synthesizes consecutive batches of ECG and runs QRS detection and
// heart-rate variability analysis over each.
type ECG struct {
	base
	p ECGParams
}

// NewECG returns the ECG processing workload.
func NewECG(p ECGParams, logger *slog.Logger) *ECG {
	return &ECG{base: newBase("ecg", logger), p: p}
}

func (e *ECG) Banner(w io.Writer) error {
	c := &console{w: w}
	c.println("=== Intensive ECG Processing Workload ===")
	c.printf("Sampling Rate: %d Hz\n", e.p.SampleRate)
	c.printf("Buffer Size: %d samples\n", e.p.BufferSize)
	c.printf("Processing Iterations: %d\n\n", e.p.Iterations)
	return c.err
}

func (e *ECG) Run(ctx context.Context, w io.Writer) (*Summary, error) {
	if err := e.Banner(w); err != nil {
		return nil, err
	}
	c := &console{w: w}
	p := e.p

	cfg := signal.DefaultDetectorConfig()
	cfg.Threshold = p.Threshold
	det := signal.NewDetector(cfg, p.BufferSize)
	samples := make([]signal.Sample, p.BufferSize)

	var metrics signal.HeartMetrics
	var qrsTotal, arrhythmias int64

	for iter := 0; iter < p.Iterations; iter++ {
		if err := e.checkpoint(ctx, iter); err != nil {
			return nil, err
		}
		signal.Fill(samples, uint64(iter)*uint64(p.BufferSize), p.SampleRate)

		m, ok := det.Process(samples)
		qrsTotal += int64(m.QRSDetected)
		if ok {
			metrics = m
		}
		if metrics.Arrhythmia {
			arrhythmias++
		}
		e.logger.Debug("batch analysed", "iteration", iter, "qrs", m.QRSDetected, "intervals", len(det.Intervals()))

		if (iter+1)%p.ReportEvery == 0 {
			c.printf("Iteration %d/%d: HR=%d BPM, RR=%d ms, HRV=%d, Arrhythmia=%s\n",
				iter+1, p.Iterations, metrics.HeartRate, metrics.RRInterval, metrics.HRV,
				yesNo(metrics.Arrhythmia, "DETECTED", "Normal"))
		}
	}

	c.println("\n=== Processing Complete ===")
	c.printf("Total QRS complexes detected: %d\n", qrsTotal)
	c.printf("Total arrhythmias detected: %d\n", arrhythmias)
	c.printf("Final Heart Rate: %d BPM\n", metrics.HeartRate)
	c.printf("Final RR Interval: %d ms\n", metrics.RRInterval)
	c.printf("Heart Rate Variability (variance): %d\n", metrics.HRV)
	c.printf("Heart Rate Variability (SDNN): %.2f ms\n", metrics.SDNN)
	if c.err != nil {
		return nil, c.err
	}

	s := newSummary(e.name)
	s.count("qrs_detected", qrsTotal)
	s.count("arrhythmias", arrhythmias)
	s.count("heart_rate", int64(metrics.HeartRate))
	s.count("rr_interval", int64(metrics.RRInterval))
	s.count("hrv", int64(metrics.HRV))
	s.ratio("sdnn_ms", metrics.SDNN)
	return s.sealed()
}
