package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestRun_PassingScenarios(t *testing.T) {
	for _, name := range []string{"stress_small", "burst_short", "ecg_short"} {
		t.Run(name, func(t *testing.T) {
			result, err := Run(context.Background(), loadTestScenario(t, name))
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
			assert.NotEmpty(t, result.Transcript)
			assert.NotEmpty(t, result.ProfileDigest)
			assert.Len(t, result.Summary.Digest, 64)
		})
	}
}

func TestRun_FailingAssertionsReported(t *testing.T) {
	result, err := Run(context.Background(), loadTestScenario(t, "failing"))
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "matrix_multiplications == 2")
	assert.Contains(t, result.Errors[1], "no such counter")
	assert.Contains(t, result.Errors[2], "this text is never printed")
}

func TestRun_Deterministic(t *testing.T) {
	s := loadTestScenario(t, "stress_small")

	a, err := Run(context.Background(), s)
	require.NoError(t, err)
	b, err := Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, a.Transcript, b.Transcript)
	assert.Equal(t, a.Summary.Digest, b.Summary.Digest)
	assert.Equal(t, a.ProfileDigest, b.ProfileDigest)
}

func TestRun_NoProfileUsesDefaults(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size workload")
	}
	s := &Scenario{
		Name:        "defaults",
		Description: "wake-up latency with default parameters",
		Workload:    "idle",
		Assertions: []Assertion{
			{Type: AssertCounterEquals, Counter: "wake_latency", Value: 1225},
		},
	}
	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.ProfileDigest)
}

func TestRun_InvalidProfile(t *testing.T) {
	s := &Scenario{
		Name:        "bad_profile",
		Description: "typo in overrides",
		Workload:    "burst",
		Profile:     map[string]any{"burst": map[string]any{"cycels": 3}},
		Assertions:  []Assertion{{Type: AssertOutputContains, Text: "x"}},
	}
	_, err := Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_profile")
	assert.Contains(t, err.Error(), "cycels")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, loadTestScenario(t, "stress_small"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
