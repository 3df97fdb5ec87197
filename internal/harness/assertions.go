package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/quickstep/internal/engine"
	"github.com/roach88/quickstep/internal/trace"
)

// AssertionError is returned when an assertion fails.
// It includes the expected and actual outcomes for debugging.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

// EvaluateAssertions runs every assertion against the built trace and
// returns one error message per failure.
func EvaluateAssertions(input []int64, t *trace.Trace, assertions []Assertion, retagSwaps bool) []string {
	var failures []string
	for i, assertion := range assertions {
		if err := evaluateAssertion(input, t, assertion, retagSwaps); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

func evaluateAssertion(input []int64, t *trace.Trace, a Assertion, retagSwaps bool) error {
	switch a.Type {
	case AssertTerminalSorted:
		return assertTerminalSorted(t)
	case AssertMultiset:
		return assertMultiset(input, t)
	case AssertTraceLength:
		return assertTraceLength(t, a)
	case AssertSnapshotAt:
		return assertSnapshotAt(t, a)
	case AssertDeterminism:
		return assertDeterminism(input, t, retagSwaps)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertTerminalSorted checks the last snapshot is sorted non-decreasing
// with every element tagged sorted.
func assertTerminalSorted(t *trace.Trace) error {
	terminal := t.Terminal()
	if !terminal.Sorted() {
		return &AssertionError{
			Type:     AssertTerminalSorted,
			Expected: "terminal snapshot in non-decreasing order",
			Actual:   fmt.Sprintf("values %v", terminal.Values()),
		}
	}
	if !terminal.AllTagged(trace.StateSorted) {
		return &AssertionError{
			Type:     AssertTerminalSorted,
			Expected: "every terminal element tagged sorted",
			Actual:   "mixed tags in terminal snapshot",
		}
	}
	return nil
}

// assertMultiset checks every snapshot holds exactly the input's value
// multiset: the sort is a pure permutation.
func assertMultiset(input []int64, t *trace.Trace) error {
	want := sortedCopy(input)
	for i := 0; i < t.Len(); i++ {
		got := sortedCopy(t.At(i).Values())
		if !equalInt64(want, got) {
			return &AssertionError{
				Type:     AssertMultiset,
				Expected: fmt.Sprintf("value multiset %v in snapshot %d", want, i),
				Actual:   fmt.Sprintf("%v", got),
			}
		}
	}
	return nil
}

func assertTraceLength(t *trace.Trace, a Assertion) error {
	if t.Len() != a.Length {
		return &AssertionError{
			Type:     AssertTraceLength,
			Expected: fmt.Sprintf("trace length %d", a.Length),
			Actual:   fmt.Sprintf("%d", t.Len()),
		}
	}
	return nil
}

func assertSnapshotAt(t *trace.Trace, a Assertion) error {
	snap := t.At(a.Index)

	if a.Values != nil {
		want, err := engine.CoerceValues(a.Values)
		if err != nil {
			return fmt.Errorf("snapshot_at values: %w", err)
		}
		if !equalInt64(want, snap.Values()) {
			return &AssertionError{
				Type:     AssertSnapshotAt,
				Expected: fmt.Sprintf("values %v at index %d", want, a.Index),
				Actual:   fmt.Sprintf("%v", snap.Values()),
			}
		}
	}

	if a.NarrationContains != "" && !strings.Contains(snap.Narration, a.NarrationContains) {
		return &AssertionError{
			Type:     AssertSnapshotAt,
			Expected: fmt.Sprintf("narration containing %q at index %d", a.NarrationContains, a.Index),
			Actual:   fmt.Sprintf("%q", snap.Narration),
		}
	}

	return nil
}

// assertDeterminism rebuilds the trace and compares canonical hashes.
func assertDeterminism(input []int64, t *trace.Trace, retagSwaps bool) error {
	first, err := trace.Hash(t)
	if err != nil {
		return fmt.Errorf("hash trace: %w", err)
	}

	var opts []engine.Option
	if retagSwaps {
		opts = append(opts, engine.WithRetaggedSwaps())
	}
	second, err := trace.Hash(engine.BuildTrace(input, opts...))
	if err != nil {
		return fmt.Errorf("hash rebuilt trace: %w", err)
	}

	if first != second {
		return &AssertionError{
			Type:     AssertDeterminism,
			Expected: fmt.Sprintf("rebuilt trace hash %s", first),
			Actual:   second,
		}
	}
	return nil
}

func sortedCopy(vals []int64) []int64 {
	out := make([]int64, len(vals))
	copy(out, vals)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equalInt64(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
