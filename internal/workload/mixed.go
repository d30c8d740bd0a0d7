package workload

import (
	"context"
	"io"
	"log/slog"

	"github.com/roach88/hiot/internal/busywait"
	"github.com/roach88/hiot/internal/signal"
	"github.com/roach88/hiot/internal/vitals"
)

// Segment analysis constants: peaks must rise this far above baseline, and
// a one-second segment scales to BPM over a five-second window.
const (
	segmentThreshold = 150
	segmentBPMScale  = 12
	txFlushDelay     = 500
)

// Mixed interleaves background monitoring, ECG analysis and transmission on
// a shared schedule and idles when nothing is due.
type Mixed struct {
	base
	p MixedParams
}

// NewMixed returns the mixed-activity workload.
func NewMixed(p MixedParams, logger *slog.Logger) *Mixed {
	return &Mixed{base: newBase("mixed", logger), p: p}
}

func (m *Mixed) Banner(w io.Writer) error {
	c := &console{w: w}
	c.println("=== Mixed Workload Simulation ===")
	c.printf("Simulation Cycles: %d\n", m.p.Cycles)
	c.printf("Background Monitor Frequency: Every %d iterations\n", m.p.MonitorEvery)
	c.printf("ECG Analysis Frequency: Every %d iterations\n", m.p.ECGEvery)
	c.printf("Transmission Frequency: Every %d iterations\n\n", m.p.TransmitEvery)
	return c.err
}

func (m *Mixed) Run(ctx context.Context, w io.Writer) (*Summary, error) {
	if err := m.Banner(w); err != nil {
		return nil, err
	}
	c := &console{w: w}
	p := m.p

	readings := make([]vitals.Reading, vitals.SensorCount)
	segment := make([]uint16, p.SegmentLength)
	history := make([]uint16, p.HistoryLength)
	frame := make([]byte, vitals.FrameCapacity)
	analyses := 0

	var samples, ecgAnalyses, transmissions, alerts, idlePeriods, bytesSent int64

	for cycle := 0; cycle < p.Cycles; cycle++ {
		if err := m.checkpoint(ctx, cycle); err != nil {
			return nil, err
		}
		t := uint32(cycle * p.Step)
		c.printf("--- Cycle %d/%d (t=%d) ---\n", cycle+1, p.Cycles, t)

		doMonitor := int(t)%p.MonitorEvery == 0
		doECG := int(t)%p.ECGEvery == 0
		doTransmit := int(t)%p.TransmitEvery == 0

		if doMonitor {
			n := vitals.ReadAll(readings, t)
			samples += vitals.SensorCount
			alerts += int64(n)
			c.printf("  Monitoring: %d sensors, %d alerts\n", vitals.SensorCount, n)
		}

		if doECG {
			signal.SyntheticSegment(segment, uint64(t))
			res := signal.AnalyzeSegment(segment, signal.Baseline, segmentThreshold, segmentBPMScale)
			history[analyses%len(history)] = res.HeartRate
			analyses++
			ecgAnalyses++
			avg := signal.MovingAverage(history[:min(analyses, len(history))])
			c.printf("  ECG Analysis: HR=%d BPM (avg=%d), Anomaly=%s\n", res.HeartRate, avg, yesNo(res.Anomaly, "YES", "NO"))
			if res.Anomaly {
				alerts++
			}
		}

		if doTransmit {
			n := vitals.EncodeReadings(readings, frame, func([]byte) { busywait.Delay(txFlushDelay) })
			transmissions++
			bytesSent += int64(n)
			c.printf("  Transmission: %d bytes sent\n", n)
		}

		if !doMonitor && !doECG && !doTransmit {
			c.println("  Idle period (power saving)")
			busywait.Gate(p.IdleDuration)
			idlePeriods++
		}
		m.logger.Debug("cycle complete", "cycle", cycle, "monitor", doMonitor, "ecg", doECG, "transmit", doTransmit)

		busywait.Gate(p.CycleGap)
		c.println("")
	}

	duty := pct(int64(p.Cycles)-idlePeriods, int64(p.Cycles))
	c.println("=== Simulation Complete ===")
	c.printf("Total Monitoring Samples: %d\n", samples)
	c.printf("Total ECG Analyses: %d\n", ecgAnalyses)
	c.printf("Total Transmissions: %d\n", transmissions)
	c.printf("Total Alerts Triggered: %d\n", alerts)
	c.printf("Total Idle Periods: %d\n", idlePeriods)
	c.printf("Total Bytes Transmitted: %d\n", bytesSent)
	c.printf("Active Duty Cycle: %.1f%%\n", duty)
	if c.err != nil {
		return nil, c.err
	}

	s := newSummary(m.name)
	s.count("monitoring_samples", samples)
	s.count("ecg_analyses", ecgAnalyses)
	s.count("transmissions", transmissions)
	s.count("alerts", alerts)
	s.count("idle_periods", idlePeriods)
	s.count("bytes_transmitted", bytesSent)
	s.ratio("active_duty_cycle", duty)
	return s.sealed()
}
