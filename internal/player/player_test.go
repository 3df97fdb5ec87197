package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quickstep/internal/engine"
	"github.com/roach88/quickstep/internal/trace"
)

func buildTestTrace(t *testing.T) *trace.Trace {
	t.Helper()
	return engine.BuildTrace([]int64{3, 1, 2})
}

func TestCursor_StartsAtZero(t *testing.T) {
	c := NewCursor(buildTestTrace(t))
	assert.Equal(t, 0, c.Pos())
	assert.Equal(t, "initial array of 3 elements", c.Current().Narration)
}

func TestCursor_AdvanceClampsAtEnd(t *testing.T) {
	c := NewCursor(buildTestTrace(t))

	last := c.Len() - 1
	for i := 0; i < c.Len()+5; i++ {
		c.Advance()
	}
	assert.Equal(t, last, c.Pos(), "advance is a no-op at the final index")
	assert.True(t, c.AtEnd())
}

func TestCursor_RetreatClampsAtZero(t *testing.T) {
	c := NewCursor(buildTestTrace(t))

	c.Retreat()
	c.Retreat()
	assert.Equal(t, 0, c.Pos(), "retreat is a no-op at index 0")
}

func TestCursor_AdvanceRetreatIdempotent(t *testing.T) {
	c := NewCursor(buildTestTrace(t))

	for pos := 0; pos < c.Len()-1; pos++ {
		c.Seek(pos)
		c.Advance()
		c.Retreat()
		assert.Equal(t, pos, c.Pos(), "retreat(advance(c)) == c for c < len-1")
	}
}

func TestCursor_RepeatedReadsIdentical(t *testing.T) {
	c := NewCursor(buildTestTrace(t))
	c.Seek(2)

	first, err := trace.MarshalSnapshotCanonical(c.Current())
	require.NoError(t, err)
	second, err := trace.MarshalSnapshotCanonical(c.Current())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second),
		"the snapshot at a cursor is byte-identical on repeated reads")
}

func TestCursor_SeekClamps(t *testing.T) {
	c := NewCursor(buildTestTrace(t))

	assert.Equal(t, 0, c.Seek(-3))
	assert.Equal(t, c.Len()-1, c.Seek(999))
	assert.Equal(t, 2, c.Seek(2))
}

func TestPlayer_PlaysToEnd(t *testing.T) {
	tr := buildTestTrace(t)

	var indices []int
	p := NewPlayer(tr, time.Millisecond, func(index int, snap trace.Snapshot) {
		indices = append(indices, index)
	})

	err := p.Play(context.Background())
	require.NoError(t, err)

	require.Len(t, indices, tr.Len(), "every snapshot revealed exactly once")
	for i, idx := range indices {
		assert.Equal(t, i, idx)
	}
	assert.True(t, p.Cursor().AtEnd())
}

func TestPlayer_ContextCancellation(t *testing.T) {
	tr := engine.BuildTrace([]int64{9, 8, 7, 6, 5, 4, 3, 2, 1})

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPlayer(tr, time.Hour, func(index int, snap trace.Snapshot) {
		// Only the starting snapshot should arrive before cancellation.
		cancel()
	})

	err := p.Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, p.Cursor().AtEnd())
}

func TestPlayer_Reset(t *testing.T) {
	tr := buildTestTrace(t)
	p := NewPlayer(tr, time.Millisecond, func(int, trace.Snapshot) {})

	require.NoError(t, p.Play(context.Background()))
	require.True(t, p.Cursor().AtEnd())

	p.Reset()
	assert.Equal(t, 0, p.Cursor().Pos())
}

func TestPlayer_SingleSnapshotFromEnd(t *testing.T) {
	tr := buildTestTrace(t)
	p := NewPlayer(tr, time.Hour, func(int, trace.Snapshot) {})
	p.Cursor().Seek(tr.Len() - 1)

	// Already at the terminal snapshot: emits once and returns without
	// waiting a tick.
	done := make(chan error, 1)
	go func() { done <- p.Play(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Play should return immediately at the terminal snapshot")
	}
}
