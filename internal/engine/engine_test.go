package engine

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quickstep/internal/trace"
)

func sortedValues(vals []int64) []int64 {
	out := make([]int64, len(vals))
	copy(out, vals)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestBuildTrace_EmptyInput(t *testing.T) {
	tr := BuildTrace(nil)

	require.Equal(t, 2, tr.Len(), "empty input yields exactly initial and terminal snapshots")
	assert.Empty(t, tr.Initial().Elements)
	assert.Empty(t, tr.Terminal().Elements)
	assert.True(t, tr.Terminal().Sorted())
}

func TestBuildTrace_SingleElement(t *testing.T) {
	tr := BuildTrace([]int64{42})

	require.Equal(t, 2, tr.Len(), "singleton range triggers no partition")
	assert.Equal(t, []int64{42}, tr.Terminal().Values())
	assert.True(t, tr.Terminal().AllTagged(trace.StateSorted))
}

func TestBuildTrace_InitialSnapshot(t *testing.T) {
	input := []int64{19, 28, 37, 38, 39, 39, 8, 9}
	tr := BuildTrace(input)

	initial := tr.Initial()
	assert.Equal(t, input, initial.Values(), "first snapshot is the unmodified input")
	assert.True(t, initial.AllTagged(trace.StateDefault))
	assert.Equal(t, trace.NoPivot, initial.PivotIndex)
	assert.Empty(t, initial.ComparingIndices)
	assert.Equal(t, StepCall, initial.StepPointer)
}

func TestBuildTrace_TerminalSnapshot(t *testing.T) {
	tr := BuildTrace([]int64{19, 28, 37, 38, 39, 39, 8, 9})

	terminal := tr.Terminal()
	assert.Equal(t, []int64{8, 9, 19, 28, 37, 38, 39, 39}, terminal.Values())
	assert.True(t, terminal.AllTagged(trace.StateSorted))
	assert.Equal(t, trace.NoPivot, terminal.PivotIndex)
	assert.Equal(t, StepDone, terminal.StepPointer)
}

func TestBuildTrace_MultisetInvariant(t *testing.T) {
	inputs := [][]int64{
		{19, 28, 37, 38, 39, 39, 8, 9},
		{5, 4, 3, 2, 1},
		{1},
		{2, 2, 1, 1, 3, 3},
		{-7, 0, -7, 12},
	}

	for _, input := range inputs {
		tr := BuildTrace(input)
		want := sortedValues(input)

		for i := 0; i < tr.Len(); i++ {
			snap := tr.At(i)
			require.Len(t, snap.Elements, len(input),
				"input %v: snapshot %d has wrong length", input, i)
			assert.Equal(t, want, sortedValues(snap.Values()),
				"input %v: snapshot %d altered the value multiset", input, i)
		}
	}
}

func TestBuildTrace_Deterministic(t *testing.T) {
	input := []int64{9, 1, 8, 2, 7, 3, 6, 4, 5}

	h1, err := trace.Hash(BuildTrace(input))
	require.NoError(t, err)
	h2, err := trace.Hash(BuildTrace(input))
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "identical input must yield a byte-identical trace")
}

func TestBuildTrace_DoesNotMutateInput(t *testing.T) {
	input := []int64{3, 1, 2}
	BuildTrace(input)
	assert.Equal(t, []int64{3, 1, 2}, input)
}

func TestBuildTrace_Duplicates(t *testing.T) {
	tr := BuildTrace([]int64{5, 5, 5})

	terminal := tr.Terminal()
	assert.Equal(t, []int64{5, 5, 5}, terminal.Values())
	assert.True(t, terminal.AllTagged(trace.StateSorted))

	// All comparisons are equal-to-pivot; <= moves them left
	// deterministically with no error.
	h1, err := trace.Hash(tr)
	require.NoError(t, err)
	h2, err := trace.Hash(BuildTrace([]int64{5, 5, 5}))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

// TestBuildTrace_ThreeElements pins the exact emission sequence for a
// small input: initial, partition-start, two comparisons, one swap, one
// pivot placement, terminal.
func TestBuildTrace_ThreeElements(t *testing.T) {
	tr := BuildTrace([]int64{3, 1, 2})
	require.Equal(t, 7, tr.Len())

	narrations := make([]string, tr.Len())
	for i := 0; i < tr.Len(); i++ {
		narrations[i] = tr.At(i).Narration
	}
	assert.Equal(t, []string{
		"initial array of 3 elements",
		"choose pivot 2 at index 2 for A[0..2]",
		"compare A[0]=3 with pivot 2",
		"compare A[1]=1 with pivot 2",
		"swap A[0] and A[1]",
		"pivot 2 placed at index 1",
		"array sorted",
	}, narrations)

	start := tr.At(1)
	assert.Equal(t, 2, start.PivotIndex)
	assert.Equal(t, trace.StatePivot, start.Elements[2].State)
	assert.Equal(t, trace.StateActive, start.Elements[0].State)
	assert.Equal(t, StepChoosePivot, start.StepPointer)

	compare := tr.At(3)
	assert.Equal(t, []int{1}, compare.ComparingIndices)
	assert.Equal(t, trace.StateComparing, compare.Elements[1].State)
	assert.Equal(t, StepCompare, compare.StepPointer)

	placed := tr.At(5)
	assert.Equal(t, 1, placed.PivotIndex)
	assert.Equal(t, trace.StatePivot, placed.Elements[1].State)
	assert.Equal(t, []int64{1, 2, 3}, placed.Values())
	assert.Equal(t, "partition 1 complete: pivot 2 fixed at index 1", placed.PartitionNarration)
}

// TestBuildTrace_SwapSnapshotAsymmetry verifies the swap snapshot copies
// the working array verbatim: default tags, no pivot, no comparing set.
func TestBuildTrace_SwapSnapshotAsymmetry(t *testing.T) {
	tr := BuildTrace([]int64{3, 1, 2})

	swap := tr.At(4)
	require.Equal(t, StepSwap, swap.StepPointer)
	assert.True(t, swap.AllTagged(trace.StateDefault))
	assert.Equal(t, trace.NoPivot, swap.PivotIndex)
	assert.Empty(t, swap.ComparingIndices)
	assert.Equal(t, []int64{1, 3, 2}, swap.Values(), "post-swap values")
	assert.Equal(t, "partitioning A[0..2] around pivot 2", swap.PartitionNarration)
}

func TestBuildTrace_WithRetaggedSwaps(t *testing.T) {
	tr := BuildTrace([]int64{3, 1, 2}, WithRetaggedSwaps())

	swap := tr.At(4)
	require.Equal(t, StepSwap, swap.StepPointer)
	assert.Equal(t, 2, swap.PivotIndex, "retagged mode re-derives the pivot")
	assert.Equal(t, trace.StatePivot, swap.Elements[2].State)
	assert.Equal(t, trace.StateActive, swap.Elements[0].State)
}

// TestBuildTrace_ComparingWithinRange checks every comparison snapshot
// tags indices only inside the partition currently being narrated.
func TestBuildTrace_ComparingWithinRange(t *testing.T) {
	tr := BuildTrace([]int64{4, 7, 1, 9, 2, 8, 3})

	for i := 0; i < tr.Len(); i++ {
		snap := tr.At(i)
		if snap.StepPointer != StepCompare {
			continue
		}
		require.Len(t, snap.ComparingIndices, 1)
		j := snap.ComparingIndices[0]
		assert.Equal(t, trace.StateComparing, snap.Elements[j].State)

		// The compared index sits inside the active range: every index
		// between it and the pivot is active, comparing, or pivot.
		require.NotEqual(t, trace.NoPivot, snap.PivotIndex)
		for idx := j; idx <= snap.PivotIndex; idx++ {
			assert.NotEqual(t, trace.StateDefault, snap.Elements[idx].State,
				"snapshot %d: index %d should be inside the active range", i, idx)
		}
	}
}

// TestBuildTrace_BoundaryMonotonic recovers the boundary index from swap
// narrations and checks it never decreases within one partition.
func TestBuildTrace_BoundaryMonotonic(t *testing.T) {
	tr := BuildTrace([]int64{6, 3, 9, 1, 8, 2, 7, 4})

	lastBoundary := -1
	for idx := 0; idx < tr.Len(); idx++ {
		snap := tr.At(idx)
		switch snap.StepPointer {
		case StepChoosePivot:
			lastBoundary = -1 // new partition, boundary resets
		case StepSwap:
			var i, j int
			_, err := fmt.Sscanf(snap.Narration, "swap A[%d] and A[%d]", &i, &j)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, i, lastBoundary,
				"boundary index must be non-decreasing within a partition")
			lastBoundary = i
		}
	}
}

// TestBuildTrace_EmissionOrder checks depth-first left-first order: after
// a pivot placement, the next partition-start (if any) covers the left
// subrange before any right subrange at the same depth.
func TestBuildTrace_EmissionOrder(t *testing.T) {
	tr := BuildTrace([]int64{5, 2, 8, 1, 9, 3, 7, 4, 6})

	var starts [][2]int
	for i := 0; i < tr.Len(); i++ {
		snap := tr.At(i)
		if snap.StepPointer != StepChoosePivot {
			continue
		}
		var pivot, idx, low, high int
		_, err := fmt.Sscanf(snap.Narration, "choose pivot %d at index %d for A[%d..%d]", &pivot, &idx, &low, &high)
		require.NoError(t, err)
		starts = append(starts, [2]int{low, high})
	}
	require.NotEmpty(t, starts)

	// First partition covers the whole array; each later partition is a
	// strict subrange of some earlier one.
	assert.Equal(t, [2]int{0, 8}, starts[0])
	for i := 1; i < len(starts); i++ {
		contained := false
		for j := 0; j < i; j++ {
			if starts[j][0] <= starts[i][0] && starts[i][1] <= starts[j][1] {
				contained = true
				break
			}
		}
		assert.True(t, contained, "partition %v not contained in any earlier partition", starts[i])
	}
}

func TestPseudocode_Copy(t *testing.T) {
	lines := Pseudocode()
	require.NotEmpty(t, lines)

	lines[0] = "mutated"
	assert.NotEqual(t, "mutated", Pseudocode()[0], "Pseudocode returns a copy")
}

func TestPseudocodeLine_Clamps(t *testing.T) {
	assert.Equal(t, Pseudocode()[0], PseudocodeLine(-1))
	assert.Equal(t, Pseudocode()[len(Pseudocode())-1], PseudocodeLine(999))
	assert.Equal(t, "array sorted", PseudocodeLine(StepDone))
}
