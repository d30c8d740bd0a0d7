package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no run has the requested id.
var ErrNotFound = errors.New("run not found")

// Run is one recorded workload execution.
type Run struct {
	ID            string
	Seq           int64
	Workload      string
	Digest        string
	ProfileDigest string
	Summary       []byte // JSON
	Transcript    []byte // uncompressed; nil in listings
	StartedAt     time.Time
	Duration      time.Duration
}

// WriteRun records a run and returns its seq. Writing an id that already
// exists is a no-op that returns the existing row's seq.
func (s *Store) WriteRun(ctx context.Context, r Run) (int64, error) {
	packed := compress(r.Transcript)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, workload, digest, profile_digest, summary, transcript, started_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		r.ID,
		r.Workload,
		r.Digest,
		r.ProfileDigest,
		string(r.Summary),
		packed,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.Duration.Nanoseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, r.ID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: read seq: %w", err)
	}
	return seq, nil
}

// ReadRun returns the run with the given id, transcript included.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, id, workload, digest, profile_digest, summary, transcript, started_at, duration_ns
		FROM runs
		WHERE id = ?
	`, id)

	var (
		r       Run
		summary string
		packed  []byte
		started string
		nanos   int64
	)
	err := row.Scan(&r.Seq, &r.ID, &r.Workload, &r.Digest, &r.ProfileDigest, &summary, &packed, &started, &nanos)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}

	r.Summary = []byte(summary)
	r.Duration = time.Duration(nanos)
	if r.StartedAt, err = parseTime(started); err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	if r.Transcript, err = decompress(packed); err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return r, nil
}

// ListRuns returns recorded runs in seq order without their transcripts.
// An empty workload lists every run. The result is never nil.
func (s *Store) ListRuns(ctx context.Context, workload string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, workload, digest, profile_digest, summary, started_at, duration_ns
		FROM runs
		WHERE ? = '' OR workload = ?
		ORDER BY seq ASC
	`, workload, workload)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			r       Run
			summary string
			started string
			nanos   int64
		)
		if err := rows.Scan(&r.Seq, &r.ID, &r.Workload, &r.Digest, &r.ProfileDigest, &summary, &started, &nanos); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Summary = []byte(summary)
		r.Duration = time.Duration(nanos)
		if r.StartedAt, err = parseTime(started); err != nil {
			return nil, fmt.Errorf("scan run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse started_at %q: %w", s, err)
	}
	return t, nil
}
