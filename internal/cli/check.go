package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/quickstep/internal/harness"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
}

// CheckResult is the per-scenario outcome in the check payload.
type CheckResult struct {
	Scenario  string   `json:"scenario"`
	Passed    bool     `json:"passed"`
	TraceHash string   `json:"trace_hash"`
	Failures  []string `json:"failures,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [scenario files...]",
		Short: "Run conformance scenarios",
		Long: `Run one or more scenario files and evaluate their assertions.

Each scenario is schema-validated, its trace is built, and every
assertion is checked. Exit code 1 if any scenario fails, 2 for malformed
scenarios or unreadable files.

Examples:
  quickstep check scenarios/basic.yaml
  quickstep check scenarios/*.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd, args)
		},
	}

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command, paths []string) error {
	var results []CheckResult
	failed := 0

	for _, path := range paths {
		scenario, err := harness.LoadScenario(path)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load scenario %s", path), err)
		}

		result, err := harness.Run(scenario)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to run scenario %s", scenario.Name), err)
		}

		if !result.Passed() {
			failed++
		}
		results = append(results, CheckResult{
			Scenario:  result.ScenarioName,
			Passed:    result.Passed(),
			TraceHash: result.TraceHash,
			Failures:  result.Failures,
		})
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, r := range results {
			status := "PASS"
			if !r.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(w, "%s  %s  (%s)\n", status, r.Scenario, r.TraceHash[:12])
			for _, failure := range r.Failures {
				fmt.Fprintf(w, "     %s\n", failure)
			}
		}
		fmt.Fprintf(w, "\n%d scenario(s), %d failed\n", len(results), failed)
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", failed))
	}
	return nil
}
