package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoRoot = filepath.Join("..", "..")

func TestShippedScenariosPass(t *testing.T) {
	stdout, _, code := execute(t, "check", filepath.Join(repoRoot, "scenarios"))
	require.Equal(t, ExitSuccess, code, stdout)
	assert.Contains(t, stdout, "3 passed, 0 failed, 3 total")
}

func TestShippedProfilesRun(t *testing.T) {
	for _, name := range []string{"quick.yaml", "quick.cue"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(repoRoot, "profiles", name)
			stdout, stderr, code := execute(t, "run", "--all", "--quiet", "--profile", path)
			require.Equal(t, ExitSuccess, code, stderr)
			assert.Contains(t, stdout, "[stress] digest ")
		})
	}
}
