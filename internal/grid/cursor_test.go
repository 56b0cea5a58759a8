// ABOUTME: Tests for the cursor stack and bounded last-page walk.
// ABOUTME: Verifies backward replay, reset-on-first, and both walk strategies.

package grid

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorStack_PushPopRoundTrip(t *testing.T) {
	var s CursorStack

	s.Push("c1")
	s.Push("c2")
	assert.Equal(t, 3, s.Page())
	assert.Equal(t, "c2", s.Current())

	top, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "c2", top)
	assert.Equal(t, "c1", s.Current())

	_, ok = s.Pop()
	require.True(t, ok)

	// Back to the initial empty-stack state.
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, "", s.Current())

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestCursorStack_ResetClearsAnyDepth(t *testing.T) {
	var s CursorStack
	for i := 0; i < 7; i++ {
		s.Push(fmt.Sprintf("c%d", i))
	}
	s.Reset()
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, "", s.Current())
}

func TestCursorPaging_Flags(t *testing.T) {
	p := CursorPaging("next-cursor", "prev-cursor", 2, 25, 25, IntPtr(57))

	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, *p.TotalPages)

	first := CursorPaging("", "", 1, 25, 10, nil)
	assert.False(t, first.HasNext)
	assert.False(t, first.HasPrev)
	assert.Nil(t, first.TotalPages)
}

// chainFetch simulates an upstream that hands out cursors c1..cN then stops.
func chainFetch(pages int, calls *int) FetchNext {
	return func(ctx context.Context, cursor string) (string, error) {
		*calls++
		var n int
		fmt.Sscanf(cursor, "c%d", &n)
		if n >= pages-1 {
			return "", nil
		}
		return fmt.Sprintf("c%d", n+1), nil
	}
}

func TestLastPageWalker_UnknownTotalWalksToEnd(t *testing.T) {
	var s CursorStack
	w := &LastPageWalker{MaxHops: 50}

	calls := 0
	err := w.Walk(context.Background(), &s, "c1", 0, chainFetch(5, &calls))
	require.NoError(t, err)

	// Pages 2..5 fetched, stack ends on the final page.
	assert.Equal(t, 4, calls)
	assert.Equal(t, 5, s.Page())
	assert.Equal(t, "c4", s.Current())
}

func TestLastPageWalker_KnownTotalHopsExactly(t *testing.T) {
	var s CursorStack
	w := &LastPageWalker{MaxHops: 50}

	calls := 0
	err := w.Walk(context.Background(), &s, "c1", 3, chainFetch(10, &calls))
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "totalPages=3 from page 1 needs exactly 2 hops")
	assert.Equal(t, 3, s.Page())
}

func TestLastPageWalker_CapBoundsTheWalk(t *testing.T) {
	var s CursorStack
	w := &LastPageWalker{MaxHops: 3}

	calls := 0
	err := w.Walk(context.Background(), &s, "c1", 0, chainFetch(100, &calls))
	require.NoError(t, err)

	assert.Equal(t, 3, calls)
	assert.Equal(t, 4, s.Page())
}

func TestLastPageWalker_NoNextIsANoop(t *testing.T) {
	var s CursorStack
	w := NewLastPageWalker()

	calls := 0
	err := w.Walk(context.Background(), &s, "", 0, chainFetch(5, &calls))
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, s.Page())
}
