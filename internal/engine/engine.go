// Package engine implements the instrumented Lomuto partitioning sort.
//
// # Determinism
//
// BuildTrace is deterministic: identical input always yields a
// byte-identical canonical trace. Three properties enforce this:
//
//  1. Single-threaded, synchronous execution - no suspension points,
//     no wall clocks, no randomness. Values equal to the pivot always
//     go left via a plain <= test; there is no randomized tie-breaking.
//  2. Exclusive ownership - the working array belongs to one BuildTrace
//     call and is never aliased outside it.
//  3. Independent snapshot copies - each emitted snapshot copies the
//     array state, so later in-place swaps cannot alter it.
//
// # Emission order
//
// Snapshots are appended in strict execution order: a faithful
// linearization of a depth-first, left-first traversal of the partition
// tree. The engine walks an explicit worklist of (low, high) ranges
// instead of recursing over a shared array; the right subrange is pushed
// before the left so the left is always processed first.
//
// # Swap snapshot asymmetry
//
// Snapshots emitted right after an in-loop swap copy the working array
// verbatim: all elements default-tagged, no pivot, no comparing set.
// Neighboring snapshots re-derive active/pivot/comparing tags from the
// current range. This asymmetry is load-bearing reference behavior;
// WithRetaggedSwaps exposes the fully re-tagged variant as an explicit
// opt-in mode rather than a silent fix.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/roach88/quickstep/internal/trace"
)

// Option configures trace construction.
type Option func(*builder)

// WithRetaggedSwaps makes swap snapshots re-derive active and pivot tags
// like every other derived snapshot, instead of copying the working array
// verbatim. Default behavior preserves the untagged swap snapshot.
func WithRetaggedSwaps() Option {
	return func(b *builder) {
		b.retagSwaps = true
	}
}

// BuildTrace runs the instrumented partitioning sort over input and
// returns the complete, immutable trace. The input slice is copied; the
// caller's slice is never mutated.
//
// The trace always has at least two snapshots: the initial all-default
// snapshot and the terminal all-sorted snapshot. Empty and single-element
// inputs produce exactly those two.
func BuildTrace(input []int64, opts ...Option) *trace.Trace {
	b := newBuilder(input, opts...)
	t := b.run()

	slog.Debug("trace built",
		"input_len", len(input),
		"snapshots", t.Len(),
		"partitions", b.partitions,
	)
	return t
}

// builder owns the working array and the snapshot sequence for one run.
// The working array holds bare values; display-state tags are derived
// fresh at each emission, never persisted between steps.
type builder struct {
	arr        []int64
	snaps      []trace.Snapshot
	partitions int // completed partitions, narration only
	retagSwaps bool

	// partitionNarr describes the partition currently being scanned.
	partitionNarr string
}

func newBuilder(input []int64, opts ...Option) *builder {
	arr := make([]int64, len(input))
	copy(arr, input)

	b := &builder{arr: arr}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// span is one pending partition range on the worklist.
type span struct {
	low, high int
}

func (b *builder) run() *trace.Trace {
	b.emitInitial()

	stack := []span{{low: 0, high: len(b.arr) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Base case: empty or singleton range, nothing emitted.
		if s.low >= s.high {
			continue
		}

		p := b.partition(s.low, s.high)

		// Right pushed first so the left subrange pops first,
		// preserving depth-first left-first emission order.
		stack = append(stack, span{low: p + 1, high: s.high}, span{low: s.low, high: p - 1})
	}

	b.emitTerminal()
	return trace.New(b.snaps)
}

// partition rearranges arr[low..high] around the pivot at arr[high] and
// returns the pivot's final index. Emits the partition-start snapshot,
// one comparison snapshot per scanned element, a swap snapshot per
// boundary swap, and the pivot-placed snapshot.
func (b *builder) partition(low, high int) int {
	pivot := b.arr[high]
	i := low - 1

	b.partitionNarr = fmt.Sprintf("partitioning A[%d..%d] around pivot %d", low, high, pivot)
	b.emitDerived(low, high, high, nil, StepChoosePivot,
		fmt.Sprintf("choose pivot %d at index %d for A[%d..%d]", pivot, high, low, high))

	for j := low; j < high; j++ {
		b.emitDerived(low, high, high, []int{j}, StepCompare,
			fmt.Sprintf("compare A[%d]=%d with pivot %d", j, b.arr[j], pivot))

		if b.arr[j] <= pivot {
			i++
			b.arr[i], b.arr[j] = b.arr[j], b.arr[i]
			b.emitSwap(low, high, i, j)
		}
	}

	b.arr[i+1], b.arr[high] = b.arr[high], b.arr[i+1]
	b.partitions++
	b.emitDerivedWithPartition(low, high, i+1, nil, StepPlacePivot,
		fmt.Sprintf("pivot %d placed at index %d", pivot, i+1),
		fmt.Sprintf("partition %d complete: pivot %d fixed at index %d", b.partitions, pivot, i+1))

	return i + 1
}

// emitInitial emits the first snapshot: whole array, all default tags,
// no pivot, no comparing set.
func (b *builder) emitInitial() {
	elems := make([]trace.Element, len(b.arr))
	for idx, v := range b.arr {
		elems[idx] = trace.Element{Value: v, State: trace.StateDefault}
	}
	b.snaps = append(b.snaps, trace.NewSnapshot(elems, trace.NoPivot, nil, StepCall,
		fmt.Sprintf("initial array of %d elements", len(b.arr)), ""))
}

// emitTerminal emits the last snapshot: every element tagged sorted.
func (b *builder) emitTerminal() {
	elems := make([]trace.Element, len(b.arr))
	for idx, v := range b.arr {
		elems[idx] = trace.Element{Value: v, State: trace.StateSorted}
	}
	b.snaps = append(b.snaps, trace.NewSnapshot(elems, trace.NoPivot, nil, StepDone,
		"array sorted", ""))
}

// emitDerived emits a snapshot with tags derived from the current range:
// [low, high] active, pivotIdx pivot, comparing indices comparing.
// Precedence: pivot > comparing > active > default.
func (b *builder) emitDerived(low, high, pivotIdx int, comparing []int, step int, narration string) {
	b.emitDerivedWithPartition(low, high, pivotIdx, comparing, step, narration, b.partitionNarr)
}

func (b *builder) emitDerivedWithPartition(low, high, pivotIdx int, comparing []int, step int, narration, partitionNarration string) {
	b.snaps = append(b.snaps, trace.NewSnapshot(
		b.deriveElements(low, high, pivotIdx, comparing),
		pivotIdx, comparing, step, narration, partitionNarration))
}

// emitSwap emits the post-swap snapshot. Default mode copies the working
// array verbatim (all default tags, no pivot, no comparing set); the
// retagged mode re-derives active and pivot tags for the current range.
func (b *builder) emitSwap(low, high, i, j int) {
	narration := fmt.Sprintf("swap A[%d] and A[%d]", i, j)

	if b.retagSwaps {
		b.emitDerived(low, high, high, nil, StepSwap, narration)
		return
	}

	elems := make([]trace.Element, len(b.arr))
	for idx, v := range b.arr {
		elems[idx] = trace.Element{Value: v, State: trace.StateDefault}
	}
	b.snaps = append(b.snaps, trace.NewSnapshot(elems, trace.NoPivot, nil, StepSwap,
		narration, b.partitionNarr))
}

// deriveElements maps the working array to tagged elements relative to
// the active range and pivot. This is a pure function of its arguments
// plus the current array values.
func (b *builder) deriveElements(low, high, pivotIdx int, comparing []int) []trace.Element {
	comparingSet := make(map[int]bool, len(comparing))
	for _, c := range comparing {
		comparingSet[c] = true
	}

	elems := make([]trace.Element, len(b.arr))
	for idx, v := range b.arr {
		state := trace.StateDefault
		switch {
		case idx == pivotIdx:
			state = trace.StatePivot
		case comparingSet[idx]:
			state = trace.StateComparing
		case idx >= low && idx <= high:
			state = trace.StateActive
		}
		elems[idx] = trace.Element{Value: v, State: state}
	}
	return elems
}
