package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/quickstep/internal/engine"
	"github.com/roach88/quickstep/internal/trace"
)

// stateMarks are the single-character tags used in text rendering.
var stateMarks = map[trace.State]string{
	trace.StateDefault:   " ",
	trace.StatePivot:     "p",
	trace.StateComparing: "?",
	trace.StateSorted:    "s",
	trace.StateActive:    "*",
}

// renderSnapshot writes a text view of one snapshot:
//
//	[3/12] compare A[1]=28 with pivot 9
//	       partitioning A[0..7] around pivot 9
//	        19*  28?  37*  38*  39*  39*   8*   9p
//	       > if A[j] <= pivot then
func renderSnapshot(w io.Writer, index, total int, snap trace.Snapshot, verbose bool) {
	fmt.Fprintf(w, "[%d/%d] %s\n", index, total-1, snap.Narration)
	if snap.PartitionNarration != "" {
		fmt.Fprintf(w, "       %s\n", snap.PartitionNarration)
	}

	var row strings.Builder
	row.WriteString("      ")
	for _, el := range snap.Elements {
		fmt.Fprintf(&row, " %3d%s", el.Value, stateMarks[el.State])
	}
	fmt.Fprintln(w, row.String())

	if verbose {
		fmt.Fprintf(w, "       > %s\n", strings.TrimSpace(engine.PseudocodeLine(snap.StepPointer)))
		if snap.PivotIndex != trace.NoPivot {
			fmt.Fprintf(w, "       pivot_index=%d comparing=%v\n", snap.PivotIndex, snap.ComparingIndices)
		}
	}
}
