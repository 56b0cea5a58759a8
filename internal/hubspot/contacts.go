// ABOUTME: CRM contact search scoped to one form's submissions.
// ABOUTME: Offset-paginated search over hs_calculated_form_submissions.

package hubspot

import (
	"context"
	"log"

	"github.com/2389/hublens/internal/grid"
)

// searchProperties are the CRM properties requested for every contact hit.
var searchProperties = []string{
	"id", "email", "firstname", "lastname", "createdate", "updatedAt",
	"phone", "company", "jobtitle", "lifecyclestage", "hs_calculated_form_submissions",
	"franchise_id", "hs_analytics_first_url",
}

// ContactsFromForm searches CRM contacts that submitted the given form,
// returning one offset-paginated page sorted by create date descending.
func (c *Client) ContactsFromForm(ctx context.Context, formID string, limit, offset int) grid.Page {
	if limit <= 0 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}
	if !c.TokenConfigured() {
		return grid.Unsupported("HubSpot token not configured. Set HUBSPOT_TOKEN in .env.", contactPrefix)
	}

	// Contacts that submitted this form carry a formGuid::timestamp marker
	// in hs_calculated_form_submissions; match either the timestamp range or
	// the bare guid token.
	body := map[string]any{
		"filterGroups": []any{
			map[string]any{"filters": []any{map[string]any{
				"propertyName": "hs_calculated_form_submissions",
				"operator":     "BETWEEN",
				"value":        formID + "::1111111111111",
				"highValue":    formID + "::9999999999999",
			}}},
			map[string]any{"filters": []any{map[string]any{
				"propertyName": "hs_calculated_form_submissions",
				"operator":     "CONTAINS_TOKEN",
				"value":        formID,
			}}},
		},
		"properties": searchProperties,
		"sorts": []any{map[string]any{
			"propertyName": "createdate",
			"direction":    "DESCENDING",
		}},
		"limit": limit,
		"after": offset,
	}

	r := c.post(ctx, "/crm/v3/objects/contacts/search", body)
	if !r.OK {
		log.Printf("hubspot: contacts search failed for %s (status %d)", formID, r.Code)
		return grid.Unsupported(
			"Contacts search API failed. This might be due to insufficient token permissions or the contact property hs_calculated_form_submissions not being available.",
			contactPrefix)
	}

	data := r.Map()
	results := asList(data["results"])
	records := normalizeContactRows(results)

	total := intField(data, "total")
	if total == nil {
		total = grid.IntPtr(len(records))
	}

	paging := grid.OffsetPaging(offset, limit, len(records), total)
	// The search API also signals a next page explicitly; trust it when the
	// arithmetic says otherwise.
	if next := str(asMap(asMap(data["paging"])["next"]), "after"); next != "" {
		paging.HasNext = true
	}

	return grid.Page{
		Supported: true,
		Rows:      grid.Rows(records),
		Columns:   grid.UnionColumns(contactPrefix, records),
		Paging:    paging,
	}
}
