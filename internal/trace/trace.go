// Package trace defines the immutable data model for partitioning sort
// traces: Element, Snapshot, and Trace, plus the canonical JSON encoding
// used for hashing, golden files, and the run store.
//
// A Trace is constructed once, eagerly, in full, and never mutated. It is
// discarded and replaced wholesale when the input changes. Consumers own
// only an integer cursor into it; backward navigation works because every
// prior snapshot stays available unchanged.
package trace

// Trace is the finite ordered sequence of snapshots produced by one full
// engine run over one input array. Length is always >= 2: an initial
// all-default snapshot and a terminal all-sorted snapshot are present even
// for empty input.
type Trace struct {
	snapshots []Snapshot
}

// New builds a Trace from snapshots, copying the slice. The snapshots
// themselves already own their element copies.
func New(snapshots []Snapshot) *Trace {
	snaps := make([]Snapshot, len(snapshots))
	copy(snaps, snapshots)
	return &Trace{snapshots: snaps}
}

// Len returns the number of snapshots.
func (t *Trace) Len() int {
	return len(t.snapshots)
}

// At returns the snapshot at index i, clamping i to [0, Len()-1].
// It never panics for an out-of-range index; the accessor contract is
// clamp, not raise. Calling At on an empty trace is a programming error
// (the engine never produces one).
func (t *Trace) At(i int) Snapshot {
	if i < 0 {
		i = 0
	}
	if i > len(t.snapshots)-1 {
		i = len(t.snapshots) - 1
	}
	return t.snapshots[i]
}

// Initial returns the first snapshot.
func (t *Trace) Initial() Snapshot {
	return t.At(0)
}

// Terminal returns the last snapshot.
func (t *Trace) Terminal() Snapshot {
	return t.At(t.Len() - 1)
}

// Snapshots returns a copy of the snapshot sequence.
// The copy protects the trace's immutability from caller mutation.
func (t *Trace) Snapshots() []Snapshot {
	snaps := make([]Snapshot, len(t.snapshots))
	copy(snaps, t.snapshots)
	return snaps
}
