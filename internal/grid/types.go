// ABOUTME: Canonical tabular contract shared by every diagnostic surface.
// ABOUTME: Defines Entity, Field, Row, Page, and the pagination descriptor.

package grid

// Field is one schema element of a form or HubDB table.
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
}

// Entity is a form or table with its normalized field list. Fields keep
// source order and are not guaranteed unique by name.
type Entity struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	RowCount int     `json:"rowCount,omitempty"`
	Fields   []Field `json:"fields"`
}

// Row maps a column key to a scalar display value. A key missing from a row
// renders as empty, never as an error.
type Row map[string]string

// Paging describes the navigation state for one fetched page. Offset-style
// surfaces fill Offset; cursor-style surfaces fill Next/Prev. Total and
// TotalPages are nil when the upstream does not report a total.
type Paging struct {
	Offset      int    `json:"offset,omitempty"`
	Limit       int    `json:"limit"`
	Next        string `json:"next,omitempty"`
	Prev        string `json:"prev,omitempty"`
	Total       *int   `json:"total"`
	TotalPages  *int   `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	HasNext     bool   `json:"hasNext"`
	HasPrev     bool   `json:"hasPrev"`
	RecordCount int    `json:"recordCount"`
}

// Page is one fetched batch of rows plus its pagination descriptor.
// Supported=false means the endpoint itself is unavailable for this account
// or token, which is distinct from a supported endpoint returning zero rows.
type Page struct {
	Supported bool     `json:"supported"`
	Message   string   `json:"message,omitempty"`
	Rows      []Row    `json:"rows"`
	Columns   []string `json:"columns"`
	Paging    Paging   `json:"paging"`
}

// Unsupported builds the page returned when an endpoint is unavailable.
// Columns fall back to the given prefix so the grid can still render a
// header, and every navigation flag is off so the pager hides entirely.
func Unsupported(message string, columns []string) Page {
	if columns == nil {
		columns = []string{}
	}
	return Page{
		Supported: false,
		Message:   message,
		Rows:      []Row{},
		Columns:   columns,
		Paging: Paging{
			Total:       IntPtr(0),
			TotalPages:  IntPtr(1),
			CurrentPage: 1,
		},
	}
}

// IntPtr returns a pointer to v, for the nullable paging counters.
func IntPtr(v int) *int {
	return &v
}
