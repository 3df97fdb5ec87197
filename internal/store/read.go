package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/quickstep/internal/trace"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// GetRun returns the run record for id, or ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, input, snapshot_count, trace_hash FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// LoadTrace reconstructs the stored trace for a run.
// Snapshots are read in index order; the result is the same immutable
// trace the engine originally built.
func (s *Store) LoadTrace(ctx context.Context, id string) (*trace.Trace, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM snapshots WHERE run_id = ? ORDER BY idx ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query snapshots for run %s: %w", id, err)
	}
	defer rows.Close()

	var snaps []trace.Snapshot
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var snap trace.Snapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot %d of run %s: %w", len(snaps), id, err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots for run %s: %w", id, err)
	}

	return trace.New(snaps), nil
}

// ListRuns returns all runs ordered by creation time, then ID for
// deterministic ordering of same-timestamp rows.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, input, snapshot_count, trace_hash
		 FROM runs ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanRun.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var inputJSON string
	if err := row.Scan(&run.ID, &run.CreatedAt, &inputJSON, &run.SnapshotCount, &run.TraceHash); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(inputJSON), &run.Input); err != nil {
		return Run{}, fmt.Errorf("unmarshal input: %w", err)
	}
	return run, nil
}
