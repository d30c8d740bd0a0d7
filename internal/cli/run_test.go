package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hiot/internal/runid"
	"github.com/roach88/hiot/internal/store"
	"github.com/roach88/hiot/internal/workload"
)

func TestSelectWorkloads(t *testing.T) {
	got, err := selectWorkloads(true, nil)
	require.NoError(t, err)
	assert.Equal(t, workload.Names(), got)

	got, err = selectWorkloads(false, []string{"stress", "burst", "stress"})
	require.NoError(t, err)
	assert.Equal(t, []string{"burst", "stress"}, got, "registry order, no duplicates")

	_, err = selectWorkloads(false, nil)
	assert.ErrorContains(t, err, "no workloads selected")

	_, err = selectWorkloads(true, []string{"burst"})
	assert.ErrorContains(t, err, "--all")

	_, err = selectWorkloads(false, []string{"burst", "sleep"})
	assert.ErrorIs(t, err, workload.ErrUnknownWorkload)
	assert.ErrorContains(t, err, "sleep")
}

func TestLoadProfile_SeedOverride(t *testing.T) {
	opts := &RunOptions{RootOptions: &RootOptions{}, Seed: 42}

	prof, err := loadProfile(opts, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), prof.Config.Monitor.Seed)

	prof, err = loadProfile(opts, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), prof.Config.Monitor.Seed)
}

func TestRun_StreamsTranscript(t *testing.T) {
	stdout, _, code := execute(t, "run", "stress", "--profile", writeTinyProfile(t))
	require.Equal(t, ExitSuccess, code)

	assert.Contains(t, stdout, "=== Stress Test Workload ===")
	assert.Contains(t, stdout, "Matrix Size: 4x4")
	assert.Contains(t, stdout, "\n[stress] digest ")
}

func TestRun_QuietPrintsCounters(t *testing.T) {
	stdout, _, code := execute(t, "run", "burst", "--profile", writeTinyProfile(t), "--quiet")
	require.Equal(t, ExitSuccess, code)

	assert.NotContains(t, stdout, "Phase")
	assert.True(t, strings.HasPrefix(stdout, "[burst] digest "))
	assert.Contains(t, stdout, "  packets_sent=2\n")
}

func TestRun_JSON(t *testing.T) {
	stdout, _, code := execute(t, "run", "burst", "stress", "--profile", writeTinyProfile(t), "--format", "json")
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Status string      `json:"status"`
		Data   []RunReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)

	burst := resp.Data[0]
	assert.Equal(t, "burst", burst.Summary.Workload)
	assert.Len(t, burst.Summary.Digest, 64)
	assert.Len(t, burst.TranscriptDigest, 64)
	assert.NotEmpty(t, burst.ProfileDigest)
	assert.Empty(t, burst.RunID)
	sent, ok := burst.Summary.Counter("packets_sent")
	require.True(t, ok)
	assert.Equal(t, int64(2), sent)
}

func TestRun_DigestsAreReproducible(t *testing.T) {
	profile := writeTinyProfile(t)
	a, _, code := execute(t, "run", "--all", "--profile", profile, "--quiet")
	require.Equal(t, ExitSuccess, code)
	b, _, code := execute(t, "run", "--all", "--profile", profile, "--quiet")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, a, b)
}

func TestRun_RecordsAndExports(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")
	promPath := filepath.Join(dir, "hiot.prom")

	opts := &RunOptions{
		RootOptions: &RootOptions{Format: "text"},
		IDs:         runid.NewFixedGenerator("run-1", "run-2"),
		Clock:       runid.FixedClock{T: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	cmd := newRunCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"ecg", "stress", "--profile", writeTinyProfile(t), "--db", dbPath, "--metrics-out", promPath, "-q"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "[ecg] digest ")
	assert.Contains(t, out.String(), " run run-1\n")
	assert.Contains(t, out.String(), " run run-2\n")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, "ecg", runs[0].Workload)
	assert.Equal(t, "stress", runs[1].Workload)
	assert.True(t, runs[0].StartedAt.Equal(opts.Clock.Now()))
	assert.NotEmpty(t, runs[0].ProfileDigest)

	full, err := st.ReadRun(context.Background(), "run-2")
	require.NoError(t, err)
	assert.Contains(t, string(full.Transcript), "=== Stress Test Complete ===")

	prom, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `hiot_runs_total{status="ok",workload="stress"} 1`)
	assert.Contains(t, string(prom), `hiot_workload_counter{counter="matrix_multiplications",workload="stress"} 1`)
}

func TestRun_ExitCodes(t *testing.T) {
	tiny := writeTinyProfile(t)
	badProfile := writeFile(t, t.TempDir(), "bad.yaml", "burst:\n  cycels: 3\n")

	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"no selection", []string{"run"}, ExitCommandError, "no workloads selected"},
		{"unknown workload", []string{"run", "sleep"}, ExitCommandError, "unknown workload"},
		{"missing profile", []string{"run", "burst", "--profile", "nope.yaml"}, ExitCommandError, "invalid profile"},
		{"invalid profile", []string{"run", "burst", "--profile", badProfile}, ExitCommandError, "cycels"},
		{"bad seed", []string{"run", "monitor", "--seed", "-1"}, ExitCommandError, "invalid flags"},
		{"bad database", []string{"run", "burst", "--profile", tiny, "--db", filepath.Join(t.TempDir(), "no", "such", "dir", "x.db")}, ExitCommandError, "failed to open database"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := execute(t, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, stderr, tt.msg)
		})
	}
}

func TestRun_JSONErrorResponse(t *testing.T) {
	stdout, _, code := execute(t, "run", "sleep", "--format", "json")
	assert.Equal(t, ExitCommandError, code)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeBadArgs, resp.Error.Code)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	code := Execute(ctx, []string{"run", "--all", "--profile", writeTinyProfile(t)}, &out, &errOut)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, errOut.String(), "context canceled")
	assert.Contains(t, errOut.String(), "1 workload(s) failed", "the first cancellation stops the loop")
}
