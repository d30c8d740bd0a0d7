package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields.
func createTestRun(id, workload string) Run {
	return Run{
		ID:         id,
		Workload:   workload,
		Digest:     fmt.Sprintf("digest-%s", id),
		Summary:    []byte(`{"workload":"` + workload + `"}`),
		Transcript: []byte("=== " + workload + " ===\n"),
		StartedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:   1500 * time.Millisecond,
	}
}
