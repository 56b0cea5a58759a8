// ABOUTME: HubDB table catalog, schema lookup, and offset-paginated row pages.
// ABOUTME: Normalizes cms/v3/hubdb payloads into the canonical grid contract.

package hubspot

import (
	"context"
	"log"
	"net/url"
	"strconv"

	"github.com/2389/hublens/internal/grid"
)

// ListTables returns every HubDB table visible to the token, with its
// column schema. Failures degrade to an empty list plus a reason code.
func (c *Client) ListTables(ctx context.Context) ([]grid.Entity, string) {
	if !c.TokenConfigured() {
		log.Println("hubspot: token not configured, skipping tables lookup")
		return []grid.Entity{}, ReasonTokenNotConfigured
	}

	r := c.get(ctx, "/cms/v3/hubdb/tables", url.Values{"limit": {"250"}})
	results := asList(r.Map()["results"])
	if !r.OK || results == nil {
		log.Printf("hubspot: hubdb tables lookup failed (status %d)", r.Code)
		return []grid.Entity{}, ReasonUpstreamError
	}

	tables := make([]grid.Entity, 0, len(results))
	for _, raw := range results {
		tm := asMap(raw)
		if tm == nil {
			continue
		}
		tables = append(tables, tableEntity(tm, ""))
	}
	return tables, ""
}

// TableDetails fetches one table's schema, degrading to empty fields when
// the table cannot be found.
func (c *Client) TableDetails(ctx context.Context, tableID string) grid.Entity {
	if !c.TokenConfigured() {
		return grid.Entity{ID: tableID, Fields: []grid.Field{}}
	}

	r := c.get(ctx, "/cms/v3/hubdb/tables/"+url.PathEscape(tableID), nil)
	data := r.Map()
	if !r.OK || data == nil {
		log.Printf("hubspot: no table details found for %s (status %d)", tableID, r.Code)
		return grid.Entity{ID: tableID, Fields: []grid.Field{}}
	}
	return tableEntity(data, tableID)
}

// TableRows fetches one offset-paginated page of HubDB rows.
func (c *Client) TableRows(ctx context.Context, tableID string, limit, offset int) grid.Page {
	if limit <= 0 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}
	if !c.TokenConfigured() {
		return grid.Unsupported("HubSpot token not configured. Set HUBSPOT_TOKEN in .env.", tablePrefix)
	}

	r := c.get(ctx, "/cms/v3/hubdb/tables/"+url.PathEscape(tableID)+"/rows", url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	})
	if !r.OK {
		return grid.Unsupported("HubDB table rows API not available or table not found.", tablePrefix)
	}

	data := r.Map()
	results := asList(data["results"])
	records := normalizeTableRows(results)

	total := intField(data, "total")
	if total == nil {
		total = grid.IntPtr(len(records))
	}

	return grid.Page{
		Supported: true,
		Rows:      grid.Rows(records),
		Columns:   grid.UnionColumns(tablePrefix, records),
		Paging:    grid.OffsetPaging(offset, limit, len(records), total),
	}
}

func tableEntity(tm map[string]any, fallbackID string) grid.Entity {
	id := str(tm, "id")
	if id == "" {
		id = fallbackID
	}
	name := firstStr(tm, "name", "label")
	if name == "" && fallbackID == "" {
		name = "Untitled table"
	}
	rowCount := 0
	if rc := intField(tm, "rowCount"); rc != nil {
		rowCount = *rc
	}
	return grid.Entity{
		ID:       id,
		Name:     name,
		RowCount: rowCount,
		Fields:   normalizeTableFields(tm),
	}
}

// intField reads m[key] as an integer, nil when absent or not numeric.
func intField(m map[string]any, key string) *int {
	if m == nil {
		return nil
	}
	switch v := m[key].(type) {
	case float64:
		return grid.IntPtr(int(v))
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return grid.IntPtr(n)
		}
	}
	return nil
}
