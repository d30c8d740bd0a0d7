package workload

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func run(t *testing.T, w Workload) (*Summary, string) {
	t.Helper()
	var out bytes.Buffer
	s, err := w.Run(context.Background(), &out)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s, out.String()
}

func assertCounters(t *testing.T, s *Summary, want map[string]int64) {
	t.Helper()
	for name, v := range want {
		got, ok := s.Counter(name)
		if assert.True(t, ok, "missing counter %s", name) {
			assert.Equal(t, v, got, "counter %s", name)
		}
	}
}

func TestNames_Order(t *testing.T) {
	assert.Equal(t, []string{"burst", "ecg", "idle", "mixed", "monitor", "stress"}, Names())
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("sleepy", DefaultConfig(), nil)
	require.ErrorIs(t, err, ErrUnknownWorkload)
	assert.Contains(t, err.Error(), "sleepy")
}

func TestNew_AllRegistered(t *testing.T) {
	for _, name := range Names() {
		w, err := New(name, DefaultConfig(), discardLogger())
		require.NoError(t, err)
		assert.Equal(t, name, w.Name())
		assert.NotEmpty(t, w.Description())
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	p, err := Params("stress", cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Stress, p)

	_, err = Params("sleepy", cfg)
	assert.ErrorIs(t, err, ErrUnknownWorkload)
}

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Burst.PacketSize = 2
	cfg.ECG.BufferSize = 4
	cfg.Stress.SortSpan = cfg.Stress.ArraySize + 1

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)
	assert.Contains(t, err.Error(), "burst.packet_size")
	assert.Contains(t, err.Error(), "ecg.buffer_size")
	assert.Contains(t, err.Error(), "stress.sort_span")
}

func TestRun_Defaults(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size workloads")
	}
	tests := []struct {
		name string
		want map[string]int64
	}{
		{"burst", map[string]int64{
			"bytes_sent": 5120, "packets_sent": 20, "packets_failed": 0, "idle_cycles": 150000,
			"burst_cycles": 20, "avg_packet_size": 256, "compressed_bytes": 4476, "raw_bytes": 2560,
		}},
		{"ecg", map[string]int64{
			"qrs_detected": 342, "arrhythmias": 0, "heart_rate": 72, "rr_interval": 833, "hrv": 0,
		}},
		{"idle", map[string]int64{
			"short_idle": 18, "medium_idle": 16, "long_idle": 16, "watchdog_checks": 340,
			"total_idle_iterations": 258000, "wake_latency": 1225,
		}},
		{"mixed", map[string]int64{
			"monitoring_samples": 150, "ecg_analyses": 30, "transmissions": 30, "alerts": 10,
			"idle_periods": 0, "bytes_transmitted": 600,
		}},
		{"monitor", map[string]int64{
			"samples_processed": 10240, "windows_filtered": 10080, "anomalies": 0,
		}},
		{"stress", map[string]int64{
			"total_operations": 1350720, "matrix_multiplications": 40, "array_sorts": 40,
			"hash_operations": 40000, "memory_accesses": 42126880, "checksum": 59192520,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.name, DefaultConfig(), discardLogger())
			require.NoError(t, err)
			s, _ := run(t, w)
			assertCounters(t, s, tt.want)
			assert.Len(t, s.Counters, len(tt.want))
			assert.Len(t, s.Digest, 64)
		})
	}
}

func TestBurst_RatioAndTranscript(t *testing.T) {
	p := DefaultConfig().Burst
	p.Cycles = 3
	p.IdleDuration = 100

	s, out := run(t, NewBurst(p, discardLogger()))
	assertCounters(t, s, map[string]int64{
		"bytes_sent": 768, "packets_sent": 3, "idle_cycles": 450,
		"compressed_bytes": 670, "raw_bytes": 384,
	})
	ratio, ok := s.Ratio("idle_active_ratio")
	require.True(t, ok)
	assert.InDelta(t, 450.0/3450.0, ratio, 1e-9)

	assert.Contains(t, out, "=== Burst Data Transmission Workload ===")
	assert.Contains(t, out, "--- Cycle 3/3 ---")
	assert.Contains(t, out, "  Compression: 128 -> 222 bytes (0.58x)")
	assert.Contains(t, out, "  Transmitted: 1/1 packets (100.0% success)")
	assert.Contains(t, out, "Idle/Active Ratio: 0.13")
}

func TestBurst_DeterministicFailure(t *testing.T) {
	p := DefaultConfig().Burst
	p.Cycles = 1
	p.IdleDuration = 0
	p.PacketSize = 4

	s, out := run(t, NewBurst(p, discardLogger()))
	assertCounters(t, s, map[string]int64{
		"packets_sent": 110, "packets_failed": 1, "bytes_sent": 440, "avg_packet_size": 4,
	})
	assert.Contains(t, out, "  Phase 5: Transmitting 111 packets...")
}

func TestECG_ShortRun(t *testing.T) {
	p := DefaultConfig().ECG
	p.Iterations = 2
	p.ReportEvery = 1

	s, out := run(t, NewECG(p, discardLogger()))
	assertCounters(t, s, map[string]int64{"qrs_detected": 14, "heart_rate": 72, "arrhythmias": 0})
	sdnn, ok := s.Ratio("sdnn_ms")
	require.True(t, ok)
	assert.Greater(t, sdnn, 0.0)

	assert.Contains(t, out, "Iteration 1/2: HR=")
	assert.Contains(t, out, "Iteration 2/2: HR=72 BPM, RR=833 ms, HRV=0, Arrhythmia=Normal")
}

func TestIdle_Pattern(t *testing.T) {
	p := IdleParams{Cycles: 7, ShortDuration: 10, MediumDuration: 20, LongDuration: 30, WatchdogInterval: 5, ReportEvery: 7}

	s, out := run(t, NewIdle(p, discardLogger()))
	// Cycles 0,1,6 short; 2,3 medium; 4,5 long.
	assertCounters(t, s, map[string]int64{
		"short_idle": 3, "medium_idle": 2, "long_idle": 2,
		"total_idle_iterations": 3*10 + 2*20 + 2*30,
		"watchdog_checks":       3*2 + 2*1,
	})
	assert.Contains(t, out, "Cycle 7: Short idle (10 iter)...")
	assert.Contains(t, out, "  Wake latency: 1225 cycles")
	assert.Contains(t, out, "  Short: 42.9%")
}

func TestMixed_IdleCycles(t *testing.T) {
	p := DefaultConfig().Mixed
	p.Cycles = 4
	p.Step = 50

	s, out := run(t, NewMixed(p, discardLogger()))
	// t=0 runs everything, t=100 only monitors, t=50 and t=150 idle.
	assertCounters(t, s, map[string]int64{
		"monitoring_samples": 10, "ecg_analyses": 1, "transmissions": 1,
		"alerts": 1, "idle_periods": 2, "bytes_transmitted": 20,
	})
	duty, ok := s.Ratio("active_duty_cycle")
	require.True(t, ok)
	assert.InDelta(t, 50.0, duty, 1e-9)

	assert.Contains(t, out, "  ECG Analysis: HR=72 BPM (avg=72), Anomaly=NO")
	assert.Contains(t, out, "--- Cycle 2/4 (t=50) ---\n  Idle period (power saving)")
}

func TestMonitor_SeedReproducible(t *testing.T) {
	p := MonitorParams{Iterations: 2, BufferSize: 64, Window: 16, Seed: 7, IdleSpin: 10}

	a, outA := run(t, NewMonitor(p, discardLogger()))
	b, outB := run(t, NewMonitor(p, discardLogger()))
	assert.Equal(t, a.Digest, b.Digest)
	assert.Equal(t, outA, outB)
	assertCounters(t, a, map[string]int64{"samples_processed": 128, "windows_filtered": 96, "anomalies": 0})
}

func TestStress_SmallProfile(t *testing.T) {
	p := StressParams{
		Iterations: 3, MatrixSize: 4, ArraySize: 64, HashTableSize: 16,
		HashIterations: 50, RandomAccesses: 20, FibN: 10, ReportEvery: 3,
	}

	s, out := run(t, NewStress(p, discardLogger()))
	assertCounters(t, s, map[string]int64{
		"total_operations": 3 * (4*4*4 + 50),
		"memory_accesses":  3 * (64*64/16 + 64 + 20),
		"checksum":         5028,
	})
	assert.Contains(t, out, "  Progress: 100% complete")
	assert.Contains(t, out, "Matrix Size: 4x4")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, name := range Names() {
		w, err := New(name, DefaultConfig(), discardLogger())
		require.NoError(t, err)
		_, err = w.Run(ctx, io.Discard)
		assert.ErrorIs(t, err, context.Canceled, name)
	}
}

func TestSummary_DigestCoversCountersOnly(t *testing.T) {
	a := newSummary("x")
	a.count("n", 1)
	a.ratio("r", 0.5)
	require.NoError(t, a.Seal())

	b := newSummary("x")
	b.count("n", 1)
	b.ratio("r", 0.75)
	require.NoError(t, b.Seal())

	assert.Equal(t, a.Digest, b.Digest)
	assert.Equal(t, map[string]int64{"n": 1}, a.CounterMap())
}
