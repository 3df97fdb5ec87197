// Package harness provides a conformance testing framework for the
// trace engine.
//
// Scenarios are YAML files naming an input array and a list of
// assertions over the resulting trace. Each scenario file is validated
// against an embedded CUE schema before decoding, then decoded with
// strict field checking, so typos fail loudly instead of silently
// skipping assertions.
//
// Golden comparison (golden.go) serializes the whole trace as canonical
// JSON and compares it byte-for-byte against a checked-in golden file,
// which is what pins the engine's emission order and narration text.
package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: one input array and the
// assertions its trace must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario; also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the array to trace. Values must be integers; floats are
	// rejected at coercion time. An empty list is a valid input.
	Input []any `yaml:"input"`

	// RetagSwaps enables the corrected swap-snapshot tagging mode.
	RetagSwaps bool `yaml:"retag_swaps,omitempty"`

	// Assertions validate the built trace. At least one is required.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one property of a built trace.
type Assertion struct {
	// Type specifies the assertion type:
	//   - "terminal_sorted": last snapshot sorted non-decreasing, all tagged sorted
	//   - "multiset": every snapshot holds the input's value multiset
	//   - "trace_length": trace has exactly Length snapshots
	//   - "snapshot_at": snapshot Index has the given Values and/or
	//     contains NarrationContains in its narration
	//   - "determinism": building the trace twice yields equal hashes
	Type string `yaml:"type"`

	// Length is the expected trace length (trace_length).
	Length int `yaml:"length,omitempty"`

	// Index selects a snapshot, clamped like the accessor (snapshot_at).
	Index int `yaml:"index,omitempty"`

	// Values are the expected element values in order (snapshot_at).
	Values []any `yaml:"values,omitempty"`

	// NarrationContains is a substring the narration must contain
	// (snapshot_at).
	NarrationContains string `yaml:"narration_contains,omitempty"`
}

// Assertion type constants.
const (
	AssertTerminalSorted = "terminal_sorted"
	AssertMultiset       = "multiset"
	AssertTraceLength    = "trace_length"
	AssertSnapshotAt     = "snapshot_at"
	AssertDeterminism    = "determinism"
)

// LoadScenario reads, schema-validates, and parses a scenario YAML file.
// Returns an error if the file doesn't exist, fails CUE schema
// validation, contains unknown fields (typos), or is missing required
// fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// CUE schema validation first: structural errors surface with schema
	// context before the stricter Go-side decoding runs.
	if err := ValidateScenarioBytes(path, data); err != nil {
		return nil, fmt.Errorf("scenario schema validation: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like
	// "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Input == nil {
		return fmt.Errorf("input is required (use an empty list for empty input)")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTerminalSorted, AssertMultiset, AssertDeterminism:
		// No extra fields required.
	case AssertTraceLength:
		if a.Length < 2 {
			return fmt.Errorf("assertions[%d]: length must be >= 2 for trace_length (every trace has initial and terminal snapshots)", index)
		}
	case AssertSnapshotAt:
		if a.Index < 0 {
			return fmt.Errorf("assertions[%d]: index must be non-negative for snapshot_at", index)
		}
		if a.Values == nil && a.NarrationContains == "" {
			return fmt.Errorf("assertions[%d]: snapshot_at needs values and/or narration_contains", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
