package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/quickstep/internal/engine"
	"github.com/roach88/quickstep/internal/store"
	"github.com/roach88/quickstep/internal/trace"
)

// traceSource holds the flags commands share for obtaining a trace:
// either build one from --input, or load a stored run via --db and --run.
type traceSource struct {
	Input      string
	Database   string
	RunID      string
	RetagSwaps bool
}

// resolve returns the trace named by the source flags.
func (src *traceSource) resolve(ctx context.Context) (*trace.Trace, error) {
	switch {
	case src.Input != "" && src.RunID != "":
		return nil, NewExitError(ExitCommandError, "--input and --run are mutually exclusive")

	case src.RunID != "":
		if src.Database == "" {
			return nil, NewExitError(ExitCommandError, "--run requires --db")
		}
		st, err := store.Open(src.Database)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		t, err := st.LoadTrace(ctx, src.RunID)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to load run %s", src.RunID), err)
		}
		return t, nil

	case src.Input != "":
		values, err := engine.ParseInput(src.Input)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid input", err)
		}
		var opts []engine.Option
		if src.RetagSwaps {
			opts = append(opts, engine.WithRetaggedSwaps())
		}
		return engine.BuildTrace(values, opts...), nil

	default:
		return nil, NewExitError(ExitCommandError, "either --input or --run is required")
	}
}

// addSourceFlags registers the shared trace-source flags on a command.
func addSourceFlags(cmd *cobra.Command, src *traceSource) {
	cmd.Flags().StringVar(&src.Input, "input", "", "comma-separated integers to trace")
	cmd.Flags().StringVar(&src.Database, "db", "", "path to SQLite run store")
	cmd.Flags().StringVar(&src.RunID, "run", "", "stored run ID to replay")
	cmd.Flags().BoolVar(&src.RetagSwaps, "retag-swaps", false, "re-derive tags on swap snapshots (corrected mode)")
}
