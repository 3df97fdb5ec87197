package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/quickstep/internal/trace"
)

// RunWithGolden executes a scenario and compares its canonical trace
// against a golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for the engine's emission order
// and narration text: any change to either shows up as a byte diff here.
//
// Returns error if scenario execution fails; golden mismatch fails t via
// goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	payload, err := goldenPayload(scenario.Name, result.Trace)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, payload)

	return nil
}

// goldenPayload wraps the canonical trace encoding with the scenario
// name. Key order is fixed (name before snapshots) so the payload itself
// is canonical.
func goldenPayload(name string, t *trace.Trace) ([]byte, error) {
	traceJSON, err := trace.MarshalCanonical(t)
	if err != nil {
		return nil, fmt.Errorf("marshal trace: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(`{"scenario_name":"`)
	buf.WriteString(name)
	buf.WriteString(`","trace":`)
	buf.Write(traceJSON)
	buf.WriteString("}")
	return buf.Bytes(), nil
}
