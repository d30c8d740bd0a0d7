package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// tinyProfile keeps every workload to a handful of cycles.
const tinyProfile = `burst:
  cycles: 2
  idle_duration: 10
ecg:
  iterations: 1
  buffer_size: 400
idle:
  cycles: 2
  short_duration: 10
  medium_duration: 20
  long_duration: 30
mixed:
  cycles: 2
monitor:
  iterations: 1
  buffer_size: 64
  idle_spin: 10
stress:
  iterations: 1
  matrix_size: 4
  array_size: 64
  hash_table_size: 16
  report_every: 1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeTinyProfile(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "tiny.yaml", tinyProfile)
}

// execute runs the full CLI and returns stdout, stderr and the exit code.
func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func mkdir(path string) error {
	return os.MkdirAll(path, 0o755)
}
