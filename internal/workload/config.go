package workload

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/roach88/hiot/internal/codec"
)

// Config carries the parameters of every workload. The zero value is not
// usable; start from DefaultConfig and override.
type Config struct {
	Burst   BurstParams   `json:"burst"`
	ECG     ECGParams     `json:"ecg"`
	Idle    IdleParams    `json:"idle"`
	Mixed   MixedParams   `json:"mixed"`
	Monitor MonitorParams `json:"monitor"`
	Stress  StressParams  `json:"stress"`
}

// BurstParams configures the burst transmission workload.
type BurstParams struct {
	Cycles          int `json:"cycles"`
	IdleDuration    int `json:"idle_duration"`
	PacketSize      int `json:"packet_size"`
	PacketsPerBurst int `json:"packets_per_burst"`
}

// ECGParams configures the ECG processing workload.
type ECGParams struct {
	SampleRate  int `json:"sample_rate"`
	BufferSize  int `json:"buffer_size"`
	Iterations  int `json:"iterations"`
	Threshold   int `json:"threshold"`
	ReportEvery int `json:"report_every"`
}

// IdleParams configures the idle-state workload.
type IdleParams struct {
	Cycles           int `json:"cycles"`
	ShortDuration    int `json:"short_duration"`
	MediumDuration   int `json:"medium_duration"`
	LongDuration     int `json:"long_duration"`
	WatchdogInterval int `json:"watchdog_interval"`
	ReportEvery      int `json:"report_every"`
}

// MixedParams configures the mixed-activity workload.
type MixedParams struct {
	Cycles        int `json:"cycles"`
	Step          int `json:"step"`
	MonitorEvery  int `json:"monitor_every"`
	ECGEvery      int `json:"ecg_every"`
	TransmitEvery int `json:"transmit_every"`
	SegmentLength int `json:"segment_length"`
	HistoryLength int `json:"history_length"`
	IdleDuration  int `json:"idle_duration"`
	CycleGap      int `json:"cycle_gap"`
}

// MonitorParams configures the patient monitor workload.
type MonitorParams struct {
	Iterations int    `json:"iterations"`
	BufferSize int    `json:"buffer_size"`
	Window     int    `json:"window"`
	Seed       uint64 `json:"seed"`
	IdleSpin   int    `json:"idle_spin"`
}

// StressParams configures the stress workload. A zero SortSpan sorts a
// quarter of the array.
type StressParams struct {
	Iterations     int `json:"iterations"`
	MatrixSize     int `json:"matrix_size"`
	ArraySize      int `json:"array_size"`
	HashTableSize  int `json:"hash_table_size"`
	SortSpan       int `json:"sort_span"`
	HashIterations int `json:"hash_iterations"`
	RandomAccesses int `json:"random_accesses"`
	FibN           int `json:"fib_n"`
	ReportEvery    int `json:"report_every"`
}

// DefaultConfig returns the reference parameters of all six workloads.
func DefaultConfig() Config {
	return Config{
		Burst: BurstParams{
			Cycles:          20,
			IdleDuration:    5000,
			PacketSize:      256,
			PacketsPerBurst: 8,
		},
		ECG: ECGParams{
			SampleRate:  360,
			BufferSize:  2048,
			Iterations:  50,
			Threshold:   150,
			ReportEvery: 10,
		},
		Idle: IdleParams{
			Cycles:           50,
			ShortDuration:    1000,
			MediumDuration:   5000,
			LongDuration:     10000,
			WatchdogInterval: 100,
			ReportEvery:      10,
		},
		Mixed: MixedParams{
			Cycles:        30,
			Step:          1000,
			MonitorEvery:  100,
			ECGEvery:      500,
			TransmitEvery: 1000,
			SegmentLength: 360,
			HistoryLength: 10,
			IdleDuration:  500,
			CycleGap:      100,
		},
		Monitor: MonitorParams{
			Iterations: 10,
			BufferSize: 1024,
			Window:     16,
			Seed:       1,
			IdleSpin:   1000,
		},
		Stress: StressParams{
			Iterations:     40,
			MatrixSize:     32,
			ArraySize:      4096,
			HashTableSize:  512,
			HashIterations: 1000,
			RandomAccesses: 500,
			FibN:           15,
			ReportEvery:    10,
		},
	}
}

// Validate reports every out-of-range parameter at once.
func (c Config) Validate() error {
	var result *multierror.Error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			result = multierror.Append(result, fmt.Errorf(format, args...))
		}
	}

	b := c.Burst
	check(b.Cycles > 0, "burst.cycles must be positive, got %d", b.Cycles)
	check(b.IdleDuration >= 0, "burst.idle_duration must not be negative, got %d", b.IdleDuration)
	check(b.PacketSize > codec.CRCSize, "burst.packet_size must exceed the %d-byte CRC trailer, got %d", codec.CRCSize, b.PacketSize)
	check(b.PacketsPerBurst > 0 && b.PacketsPerBurst <= 4096, "burst.packets_per_burst must be in 1..4096, got %d", b.PacketsPerBurst)

	e := c.ECG
	check(e.SampleRate > 0, "ecg.sample_rate must be positive, got %d", e.SampleRate)
	check(e.BufferSize > 10, "ecg.buffer_size must exceed the 10-sample warm-up, got %d", e.BufferSize)
	check(e.Iterations > 0, "ecg.iterations must be positive, got %d", e.Iterations)
	check(e.Threshold > 0, "ecg.threshold must be positive, got %d", e.Threshold)
	check(e.ReportEvery > 0, "ecg.report_every must be positive, got %d", e.ReportEvery)

	i := c.Idle
	check(i.Cycles > 0, "idle.cycles must be positive, got %d", i.Cycles)
	check(i.ShortDuration >= 0 && i.MediumDuration >= 0 && i.LongDuration >= 0,
		"idle durations must not be negative")
	check(i.WatchdogInterval > 0, "idle.watchdog_interval must be positive, got %d", i.WatchdogInterval)
	check(i.ReportEvery > 0, "idle.report_every must be positive, got %d", i.ReportEvery)

	m := c.Mixed
	check(m.Cycles > 0, "mixed.cycles must be positive, got %d", m.Cycles)
	check(m.Step >= 0, "mixed.step must not be negative, got %d", m.Step)
	check(m.MonitorEvery > 0 && m.ECGEvery > 0 && m.TransmitEvery > 0,
		"mixed task frequencies must be positive")
	check(m.SegmentLength >= 3, "mixed.segment_length must be at least 3, got %d", m.SegmentLength)
	check(m.HistoryLength > 0, "mixed.history_length must be positive, got %d", m.HistoryLength)
	check(m.IdleDuration >= 0 && m.CycleGap >= 0, "mixed idle durations must not be negative")

	mo := c.Monitor
	check(mo.Iterations > 0, "monitor.iterations must be positive, got %d", mo.Iterations)
	check(mo.Window > 0, "monitor.window must be positive, got %d", mo.Window)
	check(mo.BufferSize > mo.Window, "monitor.buffer_size must exceed the window (%d), got %d", mo.Window, mo.BufferSize)
	check(mo.IdleSpin >= 0, "monitor.idle_spin must not be negative, got %d", mo.IdleSpin)

	s := c.Stress
	check(s.Iterations > 0, "stress.iterations must be positive, got %d", s.Iterations)
	check(s.MatrixSize > 0, "stress.matrix_size must be positive, got %d", s.MatrixSize)
	check(s.ArraySize > 0, "stress.array_size must be positive, got %d", s.ArraySize)
	check(s.HashTableSize > 0, "stress.hash_table_size must be positive, got %d", s.HashTableSize)
	check(s.SortSpan >= 0 && s.SortSpan <= s.ArraySize, "stress.sort_span must be in 0..array_size, got %d", s.SortSpan)
	check(s.HashIterations >= 0 && s.RandomAccesses >= 0, "stress iteration counts must not be negative")
	check(s.FibN >= 0 && s.FibN <= 40, "stress.fib_n must be in 0..40, got %d", s.FibN)
	check(s.ReportEvery > 0, "stress.report_every must be positive, got %d", s.ReportEvery)

	return result.ErrorOrNil()
}

func (p StressParams) sortSpan() int {
	if p.SortSpan == 0 {
		return p.ArraySize / 4
	}
	return p.SortSpan
}
