// ABOUTME: Cursor-paginated form submission pages and the last-page walk.
// ABOUTME: Flattens submission value lists and enforces newest-first order.

package hubspot

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/2389/hublens/internal/grid"
)

const submissionsUnsupportedMsg = "Form submissions API not available in this account or token scope. You can still validate forms & fields."

// Submissions fetches one cursor-paginated page of form submissions.
// after is the forward cursor, empty for the first page. currentPage is the
// caller's best-effort page number (the cursor stack depth plus one); values
// below 1 are treated as "unknown" and estimated from the cursor alone.
func (c *Client) Submissions(ctx context.Context, formID string, limit int, after string, currentPage int) grid.Page {
	if limit <= 0 {
		limit = 25
	}
	if !c.TokenConfigured() {
		return grid.Unsupported("HubSpot token not configured. Set HUBSPOT_TOKEN in .env.", submissionPrefix)
	}

	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if after != "" {
		query.Set("after", after)
	}

	r := c.get(ctx, "/form-integrations/v1/submissions/forms/"+url.PathEscape(formID), query)
	if !r.OK {
		log.Printf("hubspot: submissions lookup failed for %s (status %d)", formID, r.Code)
		return grid.Unsupported(submissionsUnsupportedMsg, submissionPrefix)
	}

	data := r.Map()
	results := asList(data["results"])
	if results == nil {
		results = asList(data["submissions"])
	}
	records := normalizeSubmissionRows(results)

	next := cursorAfter(data)
	total := intField(data, "total")
	if total == nil {
		total = intField(asMap(data["paging"]), "total")
	}

	if currentPage < 1 {
		// Without a stack depth the page number is a rough estimate: at
		// least page 2 whenever a cursor was used.
		currentPage = 1
		if after != "" {
			currentPage = 2
		}
	}

	return grid.Page{
		Supported: true,
		Rows:      grid.Rows(records),
		Columns:   grid.UnionColumns(submissionPrefix, records, rawSubmittedAtKey),
		Paging:    grid.CursorPaging(next, after, currentPage, limit, len(records), total),
	}
}

// LastSubmissions walks forward from the first page to the final one and
// returns that page. When the upstream reports a total the walk performs
// exactly the needed hops; otherwise it is capped at the walker's hop limit
// and the result is best-effort.
func (c *Client) LastSubmissions(ctx context.Context, formID string, limit int) grid.Page {
	first := c.Submissions(ctx, formID, limit, "", 1)
	if !first.Supported || !first.Paging.HasNext {
		return first
	}

	totalPages := 0
	if first.Paging.TotalPages != nil {
		totalPages = *first.Paging.TotalPages
	}

	var stack grid.CursorStack
	last := first
	walker := grid.NewLastPageWalker()
	err := walker.Walk(ctx, &stack, first.Paging.Next, totalPages, func(ctx context.Context, cursor string) (string, error) {
		page := c.Submissions(ctx, formID, limit, cursor, stack.Page())
		if !page.Supported {
			return "", fmt.Errorf("submissions endpoint became unavailable mid-walk")
		}
		last = page
		return page.Paging.Next, nil
	})
	if err != nil {
		log.Printf("hubspot: last-page walk for %s stopped early: %v", formID, err)
		return grid.Unsupported(submissionsUnsupportedMsg, submissionPrefix)
	}

	last.Paging.CurrentPage = stack.Page()
	last.Paging.Prev = stack.Current()
	last.Paging.HasPrev = stack.Depth() > 0
	return last
}

// cursorAfter reads the forward cursor at paging.next.after.
func cursorAfter(data map[string]any) string {
	return str(asMap(asMap(data["paging"])["next"]), "after")
}
