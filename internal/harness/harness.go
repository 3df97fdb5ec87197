package harness

import (
	"fmt"

	"github.com/roach88/quickstep/internal/engine"
	"github.com/roach88/quickstep/internal/trace"
)

// Result holds the outcome of running one scenario.
type Result struct {
	ScenarioName string
	Input        []int64
	Trace        *trace.Trace
	TraceHash    string

	// Failures lists assertion failures; empty means the scenario passed.
	Failures []string
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run executes a scenario: coerce the input, build the trace, evaluate
// assertions. Scenario execution is deterministic - the same scenario
// always yields the same trace hash.
//
// A coercion failure (float or non-integer input value) is returned as
// an error, not a failure: the scenario itself is malformed.
func Run(scenario *Scenario) (*Result, error) {
	input, err := engine.CoerceValues(scenario.Input)
	if err != nil {
		return nil, fmt.Errorf("scenario %s input: %w", scenario.Name, err)
	}

	var opts []engine.Option
	if scenario.RetagSwaps {
		opts = append(opts, engine.WithRetaggedSwaps())
	}
	t := engine.BuildTrace(input, opts...)

	hash, err := trace.Hash(t)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: hash trace: %w", scenario.Name, err)
	}

	return &Result{
		ScenarioName: scenario.Name,
		Input:        input,
		Trace:        t,
		TraceHash:    hash,
		Failures:     EvaluateAssertions(input, t, scenario.Assertions, scenario.RetagSwaps),
	}, nil
}
