package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/quickstep/internal/engine"
	"github.com/roach88/quickstep/internal/store"
	"github.com/roach88/quickstep/internal/trace"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Input      string
	Database   string
	RetagSwaps bool
}

// BuildResult is the build command's output payload.
type BuildResult struct {
	Input     []int64 `json:"input"`
	Snapshots int     `json:"snapshots"`
	TraceHash string  `json:"trace_hash"`
	Terminal  []int64 `json:"terminal"`
	RunID     string  `json:"run_id,omitempty"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a trace from an input array",
		Long: `Build the complete trace for an input array.

The trace is materialized eagerly and in full: one immutable snapshot per
meaningful step of the partitioning sort, from the initial all-default
snapshot through the terminal all-sorted snapshot. Identical input always
yields an identical trace hash.

Examples:
  quickstep build --input "19,28,37,38,39,39,8,9"
  quickstep build --input "5,5,5" --format json
  quickstep build --input "3,1,2" --db ./runs.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "comma-separated integers to trace (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVar(&opts.Database, "db", "", "persist the run to this SQLite database")
	cmd.Flags().BoolVar(&opts.RetagSwaps, "retag-swaps", false, "re-derive tags on swap snapshots (corrected mode)")

	return cmd
}

func runBuild(opts *BuildOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	values, err := engine.ParseInput(opts.Input)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid input", err)
	}

	var engOpts []engine.Option
	if opts.RetagSwaps {
		engOpts = append(engOpts, engine.WithRetaggedSwaps())
	}
	t := engine.BuildTrace(values, engOpts...)

	hash, err := trace.Hash(t)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to hash trace", err)
	}

	result := BuildResult{
		Input:     values,
		Snapshots: t.Len(),
		TraceHash: hash,
		Terminal:  t.Terminal().Values(),
	}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		run, err := st.SaveTrace(ctx, store.UUIDv7Generator{}, values, t)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to save run", err)
		}
		result.RunID = run.ID
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Input:     %v\n", result.Input)
	fmt.Fprintf(w, "Snapshots: %d\n", result.Snapshots)
	fmt.Fprintf(w, "Hash:      %s\n", result.TraceHash)
	fmt.Fprintf(w, "Terminal:  %v\n", result.Terminal)
	if result.RunID != "" {
		fmt.Fprintf(w, "Run:       %s\n", result.RunID)
	}
	return nil
}
