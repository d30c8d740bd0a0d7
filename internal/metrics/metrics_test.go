package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hiot/internal/workload"
)

func sampleSummary() *workload.Summary {
	return &workload.Summary{
		Workload: "idle",
		Counters: []workload.Counter{{Name: "short_idle", Value: 18}, {Name: "long_idle", Value: 16}},
		Ratios:   []workload.Ratio{{Name: "short_pct", Value: 36}},
	}
}

func TestObserve_Gather(t *testing.T) {
	m := New()
	m.Observe(sampleSummary(), 250*time.Millisecond)
	m.ObserveFailure("stress")

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	byName := map[string]int{}
	for _, f := range families {
		byName[f.GetName()] = len(f.GetMetric())
	}
	assert.Equal(t, 2, byName["hiot_workload_counter"])
	assert.Equal(t, 1, byName["hiot_workload_ratio"])
	assert.Equal(t, 1, byName["hiot_workload_duration_seconds"])
	assert.Equal(t, 2, byName["hiot_runs_total"])
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe(sampleSummary(), time.Second)

	path := filepath.Join(t.TempDir(), "hiot.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `hiot_workload_counter{counter="short_idle",workload="idle"} 18`)
	assert.Contains(t, text, `hiot_workload_ratio{ratio="short_pct",workload="idle"} 36`)
	assert.Contains(t, text, `hiot_runs_total{status="ok",workload="idle"} 1`)
}

func TestWriteTextfile_BadPath(t *testing.T) {
	m := New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "hiot.prom"))
	assert.Error(t, err)
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveFailure("burst")

	fa, err := a.Registry().Gather()
	require.NoError(t, err)
	fb, err := b.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, fa)
	assert.Empty(t, fb)
}
