// Package store provides SQLite-backed durable storage for workload runs.
//
// Each run row holds the run id (UUIDv7), the workload name, its summary as
// JSON, the summary digest and the console transcript compressed with zstd.
//
// # Ordering
//
// All listings use ORDER BY seq ASC. seq is assigned by SQLite on insert and
// never reused, so wall-clock skew between hosts sharing a database file
// cannot reorder history. started_at is stored for display only.
//
// # Idempotency
//
// Writes use ON CONFLICT(id) DO NOTHING: recording the same run twice keeps
// the first row.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
