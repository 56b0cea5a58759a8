// ABOUTME: Forward-cursor pagination reconciler for form submissions.
// ABOUTME: Cursor stack for backward navigation plus a bounded last-page walk.

package grid

import (
	"context"
	"time"
)

// CursorStack remembers the cursors a client has used to reach its current
// page. The submissions API only ever hands out a forward cursor, so going
// backward means replaying the cursor that fetched the previous page. The
// stack holds one entry per page past the first: page N (N >= 2) was fetched
// with the cursor at index N-2.
type CursorStack struct {
	cursors []string
}

// Push records the cursor about to be used to fetch the next page.
func (s *CursorStack) Push(cursor string) {
	s.cursors = append(s.cursors, cursor)
}

// Pop discards the cursor for the current page, stepping back one page.
// After Pop, Current is the cursor to re-fetch the now-current page. The
// second return is false when the stack was already empty.
func (s *CursorStack) Pop() (string, bool) {
	if len(s.cursors) == 0 {
		return "", false
	}
	top := s.cursors[len(s.cursors)-1]
	s.cursors = s.cursors[:len(s.cursors)-1]
	return top, true
}

// Current returns the cursor that fetched the current page, empty string on
// the first page.
func (s *CursorStack) Current() string {
	if len(s.cursors) == 0 {
		return ""
	}
	return s.cursors[len(s.cursors)-1]
}

// Depth is the number of recorded cursors.
func (s *CursorStack) Depth() int {
	return len(s.cursors)
}

// Page is the best-effort page number implied by the stack depth.
func (s *CursorStack) Page() int {
	return len(s.cursors) + 1
}

// Reset clears the stack; "first" navigation at any depth lands here.
func (s *CursorStack) Reset() {
	s.cursors = nil
}

// CursorPaging derives the navigation state for one cursor-paginated page.
// next is the forward cursor returned by the upstream (empty when exhausted)
// and prev is the cursor this page was fetched with. currentPage is the
// caller's best-effort page number, usually CursorStack.Page.
func CursorPaging(next, prev string, currentPage, limit, recordCount int, total *int) Paging {
	if currentPage < 1 {
		currentPage = 1
	}
	p := Paging{
		Limit:       limit,
		Next:        next,
		Prev:        prev,
		Total:       total,
		CurrentPage: currentPage,
		HasNext:     next != "",
		HasPrev:     prev != "",
		RecordCount: recordCount,
	}
	if total != nil && limit > 0 {
		pages := (*total + limit - 1) / limit
		if pages < 1 {
			pages = 1
		}
		p.TotalPages = IntPtr(pages)
	}
	return p
}

// FetchNext fetches the page addressed by cursor and returns the forward
// cursor of that page, empty when it was the final page.
type FetchNext func(ctx context.Context, cursor string) (string, error)

// LastPageWalker advances a cursor stack to the final page. When the total
// page count is known it performs exactly the remaining number of hops;
// otherwise it walks forward until no further cursor is returned, capped at
// MaxHops. Delay spaces the hops out so the walk does not hammer upstream.
type LastPageWalker struct {
	MaxHops int
	Delay   time.Duration
}

// NewLastPageWalker returns a walker with the default 50-hop cap and 100ms
// inter-hop delay.
func NewLastPageWalker() *LastPageWalker {
	return &LastPageWalker{MaxHops: 50, Delay: 100 * time.Millisecond}
}

// Walk pushes cursors onto stack and fetches until the last page is reached.
// next is the forward cursor of the current page. totalPages <= 0 means the
// total is unknown. The walk is best-effort: hitting the hop cap leaves the
// stack at the deepest page reached.
func (w *LastPageWalker) Walk(ctx context.Context, stack *CursorStack, next string, totalPages int, fetch FetchNext) error {
	hops := w.MaxHops
	if totalPages > 0 {
		if remaining := totalPages - stack.Page(); remaining < hops {
			hops = remaining
		}
	}

	for i := 0; i < hops && next != ""; i++ {
		if i > 0 && w.Delay > 0 {
			select {
			case <-time.After(w.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		stack.Push(next)
		var err error
		next, err = fetch(ctx, next)
		if err != nil {
			return err
		}
	}
	return nil
}
