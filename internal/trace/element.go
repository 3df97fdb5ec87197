package trace

// State tags an Element for display. Tags are derived fresh for every
// Snapshot from the engine's position metadata - they are never stored on
// the working array between steps.
type State string

const (
	// StateDefault marks an element outside any active partition.
	StateDefault State = "default"

	// StatePivot marks the pivot element of the partition being narrated.
	// Overrides StateActive when both apply.
	StatePivot State = "pivot"

	// StateComparing marks the element currently compared against the pivot.
	StateComparing State = "comparing"

	// StateSorted marks an element in the terminal snapshot.
	StateSorted State = "sorted"

	// StateActive marks an element inside the partition range [low, high].
	StateActive State = "active"
)

// ValidStates defines the allowed element states.
var ValidStates = map[State]bool{
	StateDefault:   true,
	StatePivot:     true,
	StateComparing: true,
	StateSorted:    true,
	StateActive:    true,
}

// Element is a single data cell: a value plus a display-state tag.
//
// Value is always int64, never float64. Traces are canonically serialized
// and hashed for determinism checks and golden files, and floats break
// canonical JSON determinism.
type Element struct {
	Value int64 `json:"value"`
	State State `json:"state"`
}
