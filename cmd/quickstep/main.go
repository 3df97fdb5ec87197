// Command quickstep builds, inspects, checks, and plays back
// deterministic traces of an instrumented partitioning sort.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/quickstep/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
