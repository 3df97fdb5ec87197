package player

import (
	"context"
	"time"

	"github.com/roach88/quickstep/internal/trace"
)

// FrameFunc receives each snapshot as playback reveals it.
type FrameFunc func(index int, snap trace.Snapshot)

// Player reveals a trace's snapshots on a fixed interval. The trace was
// built eagerly before playback starts, so pausing or resetting the
// player never affects trace content - the player owns only a cursor.
//
// Player is not safe for concurrent use.
type Player struct {
	cursor   *Cursor
	interval time.Duration
	emit     FrameFunc
}

// NewPlayer creates a player over t. Interval must be positive; emit is
// called once per revealed snapshot, starting with the cursor's current
// position.
func NewPlayer(t *trace.Trace, interval time.Duration, emit FrameFunc) *Player {
	return &Player{
		cursor:   NewCursor(t),
		interval: interval,
		emit:     emit,
	}
}

// Cursor exposes the player's cursor for direct navigation between runs.
func (p *Player) Cursor() *Cursor {
	return p.cursor
}

// Play reveals snapshots from the current position through the terminal
// snapshot, one per interval tick. Returns nil when the terminal snapshot
// has been emitted, or ctx.Err() if the context is cancelled first.
func (p *Player) Play(ctx context.Context) error {
	p.emit(p.cursor.Pos(), p.cursor.Current())
	if p.cursor.AtEnd() {
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.cursor.Advance()
			p.emit(p.cursor.Pos(), p.cursor.Current())
			if p.cursor.AtEnd() {
				return nil
			}
		}
	}
}

// Reset moves the cursor back to the initial snapshot.
func (p *Player) Reset() {
	p.cursor.Seek(0)
}
