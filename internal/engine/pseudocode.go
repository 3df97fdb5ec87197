package engine

// Canonical pseudocode listing for the Lomuto partition scheme.
// Snapshot.StepPointer values index into this listing.
var pseudocode = []string{
	"procedure quicksort(A, low, high)",
	"  if low < high then",
	"    pivot := A[high]; i := low - 1",
	"    for j := low to high - 1 do",
	"      if A[j] <= pivot then",
	"        i := i + 1; swap A[i], A[j]",
	"    swap A[i+1], A[high]",
	"    quicksort(A, low, i); quicksort(A, i+2, high)",
	"array sorted",
}

// Step pointer values for each semantically distinct emission point.
const (
	// StepCall marks the initial snapshot, before any partitioning.
	StepCall = 0

	// StepChoosePivot marks a partition-start snapshot.
	StepChoosePivot = 2

	// StepCompare marks a comparison snapshot.
	StepCompare = 4

	// StepSwap marks a snapshot emitted right after an in-loop swap.
	StepSwap = 5

	// StepPlacePivot marks a pivot-placed snapshot.
	StepPlacePivot = 6

	// StepDone marks the terminal snapshot.
	StepDone = 8
)

// Pseudocode returns a copy of the canonical listing.
func Pseudocode() []string {
	lines := make([]string, len(pseudocode))
	copy(lines, pseudocode)
	return lines
}

// PseudocodeLine returns the listing line for a step pointer, clamped to
// the listing bounds so malformed pointers render rather than panic.
func PseudocodeLine(step int) string {
	if step < 0 {
		step = 0
	}
	if step > len(pseudocode)-1 {
		step = len(pseudocode) - 1
	}
	return pseudocode[step]
}
