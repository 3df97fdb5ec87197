package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/quickstep/internal/engine"
	"github.com/roach88/quickstep/internal/trace"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	narrationStyle = lipgloss.NewStyle().Italic(true)
	partitionStyle = lipgloss.NewStyle().Faint(true)

	currentLineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimLineStyle     = lipgloss.NewStyle().Faint(true)

	stateStyles = map[trace.State]lipgloss.Style{
		trace.StateDefault:   lipgloss.NewStyle(),
		trace.StateActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		trace.StatePivot:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		trace.StateComparing: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		trace.StateSorted:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

// renderElements renders the array as one styled cell per element.
func renderElements(snap trace.Snapshot) string {
	cells := make([]string, len(snap.Elements))
	for i, el := range snap.Elements {
		cells[i] = stateStyles[el.State].Render(fmt.Sprintf(" %3d ", el.Value))
	}
	return strings.Join(cells, "")
}

// renderPseudocode renders the canonical listing with the snapshot's
// current line highlighted.
func renderPseudocode(step int) string {
	var b strings.Builder
	for i, line := range engine.Pseudocode() {
		if i == step {
			b.WriteString(currentLineStyle.Render("> " + line))
		} else {
			b.WriteString(dimLineStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
