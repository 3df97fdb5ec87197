// Package player implements trace consumers: a clamped cursor for
// random-access navigation and a timed playback driver.
//
// Consumers own only an integer position into a fully materialized trace.
// Moving the cursor never re-executes the sort or mutates any snapshot;
// backward navigation works because every prior snapshot remains
// available unchanged.
package player

import "github.com/roach88/quickstep/internal/trace"

// Cursor is a position into a trace's [0, Len()-1] index range.
// Advance and Retreat clamp: a no-op at the final index and index 0
// respectively. Out-of-range access never panics.
//
// Cursor is not safe for concurrent use; each consumer owns its own.
type Cursor struct {
	trace *trace.Trace
	pos   int
}

// NewCursor creates a cursor at index 0.
func NewCursor(t *trace.Trace) *Cursor {
	return &Cursor{trace: t}
}

// Pos returns the current index.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the trace length.
func (c *Cursor) Len() int {
	return c.trace.Len()
}

// Current returns the snapshot at the current index.
// Repeated reads at the same index return identical snapshots.
func (c *Cursor) Current() trace.Snapshot {
	return c.trace.At(c.pos)
}

// Advance moves forward one snapshot. No-op at the final index.
// Returns the new index.
func (c *Cursor) Advance() int {
	if c.pos < c.trace.Len()-1 {
		c.pos++
	}
	return c.pos
}

// Retreat moves back one snapshot. No-op at index 0.
// Returns the new index.
func (c *Cursor) Retreat() int {
	if c.pos > 0 {
		c.pos--
	}
	return c.pos
}

// Seek jumps to index i, clamped to [0, Len()-1]. Returns the new index.
func (c *Cursor) Seek(i int) int {
	if i < 0 {
		i = 0
	}
	if i > c.trace.Len()-1 {
		i = c.trace.Len() - 1
	}
	c.pos = i
	return c.pos
}

// AtEnd reports whether the cursor is at the final snapshot.
func (c *Cursor) AtEnd() bool {
	return c.pos == c.trace.Len()-1
}
