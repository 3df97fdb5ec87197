package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roach88/quickstep/internal/trace"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Source traceSource
	Index  int
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one snapshot of a trace",
		Long: `Show the snapshot at a given index.

The index is clamped to the trace bounds, matching the consumer protocol:
out-of-range indices show the nearest end instead of failing.

Examples:
  quickstep show --input "3,1,2" --index 0
  quickstep show --input "3,1,2" --index 4 --verbose
  quickstep show --db ./runs.db --run 0190c6a1-... --index 2 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	addSourceFlags(cmd, &opts.Source)
	cmd.Flags().IntVar(&opts.Index, "index", 0, "snapshot index (clamped to trace bounds)")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
	t, err := opts.Source.resolve(context.Background())
	if err != nil {
		return err
	}

	snap := t.At(opts.Index)

	if opts.Format == "json" {
		payload, err := trace.MarshalSnapshotCanonical(snap)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to marshal snapshot", err)
		}
		return writeJSON(cmd.OutOrStdout(), json.RawMessage(payload))
	}

	renderSnapshot(cmd.OutOrStdout(), clampIndex(opts.Index, t.Len()), t.Len(), snap, opts.Verbose)
	return nil
}

func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}
	if i > length-1 {
		return length - 1
	}
	return i
}
