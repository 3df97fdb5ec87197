package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/quickstep/internal/trace"
)

// SaveTrace persists a complete trace as a new run. The run row and every
// snapshot row are written in a single transaction: either the whole run
// is stored or none of it is.
//
// The trace is stored as emitted - SaveTrace never reorders or rewrites
// snapshots, so a loaded run replays byte-identically.
func (s *Store) SaveTrace(ctx context.Context, gen RunIDGenerator, input []int64, t *trace.Trace) (Run, error) {
	hash, err := trace.Hash(t)
	if err != nil {
		return Run{}, fmt.Errorf("hash trace: %w", err)
	}

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return Run{}, fmt.Errorf("marshal input: %w", err)
	}

	run := Run{
		ID:            gen.Generate(),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Input:         input,
		SnapshotCount: t.Len(),
		TraceHash:     hash,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, input, snapshot_count, trace_hash)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, string(inputJSON), run.SnapshotCount, run.TraceHash)
	if err != nil {
		return Run{}, fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for i := 0; i < t.Len(); i++ {
		payload, err := trace.MarshalSnapshotCanonical(t.At(i))
		if err != nil {
			return Run{}, fmt.Errorf("marshal snapshot %d: %w", i, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO snapshots (run_id, idx, payload) VALUES (?, ?, ?)`,
			run.ID, i, string(payload))
		if err != nil {
			return Run{}, fmt.Errorf("insert snapshot %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit run %s: %w", run.ID, err)
	}

	slog.Info("run saved",
		"run_id", run.ID,
		"snapshots", run.SnapshotCount,
		"trace_hash", run.TraceHash,
	)

	return run, nil
}
