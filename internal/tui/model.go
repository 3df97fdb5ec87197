// Package tui implements the interactive trace viewer.
//
// The viewer is a pure trace consumer: it owns a cursor into the
// fully-built trace and nothing else. Stepping backward works because
// every snapshot stays materialized; no key ever re-runs the sort.
//
// TUI components are designed for single-threaded use within the
// bubbletea event loop. Do not access model state from other goroutines.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/quickstep/internal/player"
	"github.com/roach88/quickstep/internal/trace"
)

// autoplayInterval is the delay between snapshots during autoplay.
const autoplayInterval = 300 * time.Millisecond

// tickMsg advances autoplay by one snapshot.
type tickMsg time.Time

// Model is the bubbletea model for the trace viewer.
type Model struct {
	cursor  *player.Cursor
	keys    keyMap
	help    help.Model
	playing bool
}

// NewModel creates a viewer model positioned at the initial snapshot.
func NewModel(t *trace.Trace) Model {
	return Model{
		cursor: player.NewCursor(t),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Cursor exposes the model's cursor for tests.
func (m Model) Cursor() *player.Cursor {
	return m.cursor
}

// Playing reports whether autoplay is active.
func (m Model) Playing() bool {
	return m.playing
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Forward):
			m.playing = false
			m.cursor.Advance()

		case key.Matches(msg, m.keys.Back):
			m.playing = false
			m.cursor.Retreat()

		case key.Matches(msg, m.keys.First):
			m.playing = false
			m.cursor.Seek(0)

		case key.Matches(msg, m.keys.Last):
			m.playing = false
			m.cursor.Seek(m.cursor.Len() - 1)

		case key.Matches(msg, m.keys.Play):
			m.playing = !m.playing
			if m.playing {
				return m, tick()
			}

		case key.Matches(msg, m.keys.ToggleHelp):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tickMsg:
		if !m.playing {
			return m, nil
		}
		m.cursor.Advance()
		if m.cursor.AtEnd() {
			m.playing = false
			return m, nil
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(autoplayInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View implements tea.Model.
func (m Model) View() string {
	snap := m.cursor.Current()

	var b strings.Builder
	b.WriteString(titleStyle.Render("quickstep"))
	b.WriteString(fmt.Sprintf("  snapshot %d/%d", m.cursor.Pos(), m.cursor.Len()-1))
	if m.playing {
		b.WriteString("  (playing)")
	}
	b.WriteString("\n\n")

	b.WriteString(renderElements(snap))
	b.WriteString("\n\n")

	b.WriteString(narrationStyle.Render(snap.Narration))
	b.WriteString("\n")
	if snap.PartitionNarration != "" {
		b.WriteString(partitionStyle.Render(snap.PartitionNarration))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderPseudocode(snap.StepPointer))
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run opens the viewer over a trace and blocks until it exits.
func Run(t *trace.Trace) error {
	_, err := tea.NewProgram(NewModel(t), tea.WithAltScreen()).Run()
	return err
}
