package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/quickstep/internal/player"
	"github.com/roach88/quickstep/internal/trace"
	"github.com/roach88/quickstep/internal/tui"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Source traceSource
	Delay  time.Duration
	TUI    bool
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play back a trace snapshot by snapshot",
		Long: `Play back a trace.

By default snapshots print to stdout one per --delay interval. With
--tui an interactive viewer opens: arrow keys step forward and backward,
space toggles autoplay, home/end jump, q quits.

Playback only moves a cursor over the already-built trace; it never
re-executes the sort.

Examples:
  quickstep play --input "19,28,37,38,39,39,8,9" --delay 300ms
  quickstep play --input "3,1,2" --tui
  quickstep play --db ./runs.db --run 0190c6a1-... --delay 100ms`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	addSourceFlags(cmd, &opts.Source)
	cmd.Flags().DurationVar(&opts.Delay, "delay", 250*time.Millisecond, "interval between snapshots")
	cmd.Flags().BoolVar(&opts.TUI, "tui", false, "interactive terminal viewer")

	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	t, err := opts.Source.resolve(context.Background())
	if err != nil {
		return err
	}

	if opts.TUI {
		if err := tui.Run(t); err != nil {
			return WrapExitError(ExitCommandError, "viewer failed", err)
		}
		return nil
	}

	if opts.Delay <= 0 {
		return NewExitError(ExitCommandError, "--delay must be positive")
	}

	w := cmd.OutOrStdout()
	p := player.NewPlayer(t, opts.Delay, func(index int, snap trace.Snapshot) {
		renderSnapshot(w, index, t.Len(), snap, opts.Verbose)
		fmt.Fprintln(w)
	})

	if err := p.Play(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "playback interrupted", err)
	}
	return nil
}
