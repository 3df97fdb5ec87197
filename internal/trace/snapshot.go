package trace

import "slices"

// NoPivot is the PivotIndex value for snapshots with no active pivot
// (the initial snapshot, the terminal snapshot, and swap snapshots).
const NoPivot = -1

// Snapshot is one immutable step of a trace: a full copy of the array
// state plus position and narration metadata.
//
// A Snapshot owns independent copies of its slices. Later in-place swaps
// on the engine's working array cannot retroactively alter an
// already-emitted Snapshot.
type Snapshot struct {
	// Elements is the full array state at the moment of emission.
	// Its length equals the original input length in every snapshot
	// of a trace.
	Elements []Element `json:"elements"`

	// PivotIndex is the index of the active pivot, or NoPivot.
	PivotIndex int `json:"pivot_index"`

	// ComparingIndices lists the indices under comparison, sorted
	// ascending. Always a subset of the active partition range.
	ComparingIndices []int `json:"comparing_indices"`

	// StepPointer references a line in the canonical pseudocode listing.
	StepPointer int `json:"step_pointer"`

	// Narration describes this step in human-readable form.
	Narration string `json:"narration"`

	// PartitionNarration describes the partition currently being worked,
	// empty outside any partition.
	PartitionNarration string `json:"partition_narration"`
}

// NewSnapshot builds a Snapshot from the given state, copying both slices
// so the caller's working array stays exclusively owned by the caller.
// ComparingIndices is normalized to a sorted, non-nil slice.
func NewSnapshot(elements []Element, pivotIndex int, comparing []int, stepPointer int, narration, partitionNarration string) Snapshot {
	elems := make([]Element, len(elements))
	copy(elems, elements)

	comp := make([]int, len(comparing))
	copy(comp, comparing)
	slices.Sort(comp)

	return Snapshot{
		Elements:           elems,
		PivotIndex:         pivotIndex,
		ComparingIndices:   comp,
		StepPointer:        stepPointer,
		Narration:          narration,
		PartitionNarration: partitionNarration,
	}
}

// Values returns the element values in array order.
func (s Snapshot) Values() []int64 {
	vals := make([]int64, len(s.Elements))
	for i, el := range s.Elements {
		vals[i] = el.Value
	}
	return vals
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return NewSnapshot(s.Elements, s.PivotIndex, s.ComparingIndices, s.StepPointer, s.Narration, s.PartitionNarration)
}

// Sorted reports whether the element values are in non-decreasing order.
func (s Snapshot) Sorted() bool {
	for i := 1; i < len(s.Elements); i++ {
		if s.Elements[i-1].Value > s.Elements[i].Value {
			return false
		}
	}
	return true
}

// AllTagged reports whether every element carries the given state.
func (s Snapshot) AllTagged(state State) bool {
	for _, el := range s.Elements {
		if el.State != state {
			return false
		}
	}
	return true
}
