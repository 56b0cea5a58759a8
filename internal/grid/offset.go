// ABOUTME: Offset/limit pagination reconciler for HubDB rows and CRM search.
// ABOUTME: Stateless page arithmetic, tolerating an unreported total.

package grid

// OffsetPaging derives the navigation state for one offset-paginated page.
// recordCount is the number of rows actually returned. total is nil when the
// upstream did not report one; in that case TotalPages stays unknown (the
// "last" control is disabled) and HasNext is approximated by whether the
// page came back as a full batch.
func OffsetPaging(offset, limit, recordCount int, total *int) Paging {
	if limit <= 0 {
		limit = 1
	}
	if offset < 0 {
		offset = 0
	}

	p := Paging{
		Offset:      offset,
		Limit:       limit,
		Total:       total,
		CurrentPage: offset/limit + 1,
		HasPrev:     offset > 0,
		RecordCount: recordCount,
	}

	if total != nil {
		pages := (*total + limit - 1) / limit
		if pages < 1 {
			pages = 1
		}
		p.TotalPages = IntPtr(pages)
		p.HasNext = offset+limit < *total
	} else {
		p.HasNext = recordCount == limit
	}

	return p
}
