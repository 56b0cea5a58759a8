// ABOUTME: HTTP handlers for the fake HubSpot upstream.
// ABOUTME: Serves forms, submissions, contact search, and HubDB endpoints.

package mockhub

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	fixtures *Fixtures
}

func NewServer(fixtures *Fixtures) *Server {
	return &Server{fixtures: fixtures}
}

// Router builds the full fake upstream, bearer auth included.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requireBearer)
	s.RegisterRoutes(r)
	return r
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/marketing/v3/forms", s.listFormsV3)
	r.Get("/marketing/v3/forms/{formID}", s.getFormV3)
	r.Get("/forms/v2/forms", s.listFormsV2)
	r.Get("/forms/v2/forms/{formID}", s.getFormV2)
	r.Get("/form-integrations/v1/submissions/forms/{formID}", s.listSubmissions)
	r.Post("/crm/v3/objects/contacts/search", s.searchContacts)
	r.Get("/cms/v3/hubdb/tables", s.listTables)
	r.Get("/cms/v3/hubdb/tables/{tableID}", s.getTable)
	r.Get("/cms/v3/hubdb/tables/{tableID}/rows", s.listTableRows)
}

// requireBearer rejects requests without a bearer token so client-side token
// failure paths behave like the real API.
func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")) == "" {
			writeError(w, 401, "Authentication credentials not found.", "MISSING_AUTHENTICATION")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listFormsV3(w http.ResponseWriter, r *http.Request) {
	results := make([]map[string]any, 0, len(s.fixtures.Forms))
	for _, f := range s.fixtures.Forms {
		results = append(results, formV3(f))
	}
	writeJSON(w, map[string]any{
		"results": results,
		"total":   len(results),
	})
}

func (s *Server) getFormV3(w http.ResponseWriter, r *http.Request) {
	f, ok := s.findForm(chi.URLParam(r, "formID"))
	if !ok {
		writeError(w, 404, "Form not found", "OBJECT_NOT_FOUND")
		return
	}
	writeJSON(w, formV3(f))
}

func (s *Server) listFormsV2(w http.ResponseWriter, r *http.Request) {
	results := make([]map[string]any, 0, len(s.fixtures.Forms))
	for _, f := range s.fixtures.Forms {
		results = append(results, formV2(f))
	}
	// The legacy API returns a bare array, not a results wrapper.
	writeJSON(w, results)
}

func (s *Server) getFormV2(w http.ResponseWriter, r *http.Request) {
	f, ok := s.findForm(chi.URLParam(r, "formID"))
	if !ok {
		writeError(w, 404, "Form not found", "OBJECT_NOT_FOUND")
		return
	}
	writeJSON(w, formV2(f))
}

func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	subs, ok := s.fixtures.Submissions[formID]
	if !ok {
		writeError(w, 404, "Form not found", "OBJECT_NOT_FOUND")
		return
	}

	limit := queryInt(r, "limit", 20)
	start := 0
	if after := r.URL.Query().Get("after"); after != "" {
		v, err := strconv.Atoi(after)
		if err != nil || v < 0 {
			writeError(w, 400, "Invalid cursor", "VALIDATION_ERROR")
			return
		}
		start = v
	}
	end := start + limit
	if start > len(subs) {
		start = len(subs)
	}
	if end > len(subs) {
		end = len(subs)
	}

	results := make([]map[string]any, 0, end-start)
	for _, sub := range subs[start:end] {
		values := make([]map[string]any, 0, len(sub.Values))
		for _, v := range sub.Values {
			values = append(values, map[string]any{"name": v.Name, "value": v.Value})
		}
		results = append(results, map[string]any{
			"conversationId": sub.ConversationID,
			"submittedAt":    sub.SubmittedAt.UnixMilli(),
			"pageUrl":        sub.PageURL,
			"values":         values,
		})
	}

	resp := map[string]any{
		"results": results,
		"total":   len(subs),
	}
	if end < len(subs) {
		resp["paging"] = map[string]any{"next": map[string]any{"after": strconv.Itoa(end)}}
	}
	writeJSON(w, resp)
}

type searchRequest struct {
	FilterGroups []struct {
		Filters []struct {
			PropertyName string `json:"propertyName"`
			Value        string `json:"value"`
		} `json:"filters"`
	} `json:"filterGroups"`
	Limit int `json:"limit"`
	After any `json:"after"`
}

func (s *Server) searchContacts(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, 400, "Invalid request body", "VALIDATION_ERROR")
		return
	}

	formID := formIDFromFilters(body)
	contacts := s.fixtures.Contacts[formID]

	limit := body.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := afterOffset(body.After)
	end := offset + limit
	if offset > len(contacts) {
		offset = len(contacts)
	}
	if end > len(contacts) {
		end = len(contacts)
	}

	results := make([]map[string]any, 0, end-offset)
	for _, c := range contacts[offset:end] {
		results = append(results, map[string]any{
			"id":         c.ID,
			"properties": c.Properties,
			"createdAt":  c.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	resp := map[string]any{
		"results": results,
		"total":   len(contacts),
	}
	if end < len(contacts) {
		resp["paging"] = map[string]any{"next": map[string]any{"after": strconv.Itoa(end)}}
	}
	writeJSON(w, resp)
}

func (s *Server) listTables(w http.ResponseWriter, r *http.Request) {
	results := make([]map[string]any, 0, len(s.fixtures.Tables))
	for _, t := range s.fixtures.Tables {
		results = append(results, tableJSON(t))
	}
	writeJSON(w, map[string]any{
		"results": results,
		"total":   len(results),
	})
}

func (s *Server) getTable(w http.ResponseWriter, r *http.Request) {
	t, ok := s.findTable(chi.URLParam(r, "tableID"))
	if !ok {
		writeError(w, 404, "Table not found", "OBJECT_NOT_FOUND")
		return
	}
	writeJSON(w, tableJSON(t))
}

func (s *Server) listTableRows(w http.ResponseWriter, r *http.Request) {
	t, ok := s.findTable(chi.URLParam(r, "tableID"))
	if !ok {
		writeError(w, 404, "Table not found", "OBJECT_NOT_FOUND")
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	end := offset + limit
	if offset > len(t.Rows) {
		offset = len(t.Rows)
	}
	if end > len(t.Rows) {
		end = len(t.Rows)
	}

	results := make([]map[string]any, 0, end-offset)
	for _, row := range t.Rows[offset:end] {
		results = append(results, map[string]any{
			"id":     row.ID,
			"values": row.Values,
		})
	}
	writeJSON(w, map[string]any{
		"results": results,
		"total":   len(t.Rows),
		"limit":   limit,
		"offset":  offset,
	})
}

func (s *Server) findForm(id string) (Form, bool) {
	for _, f := range s.fixtures.Forms {
		if f.ID == id {
			return f, true
		}
	}
	return Form{}, false
}

func (s *Server) findTable(id string) (Table, bool) {
	for _, t := range s.fixtures.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}

func formV3(f Form) map[string]any {
	fields := make([]map[string]any, 0, len(f.Fields))
	for _, fld := range f.Fields {
		fields = append(fields, map[string]any{
			"name":      fld.Name,
			"label":     fld.Label,
			"fieldType": fld.Type,
		})
	}
	return map[string]any{
		"id":   f.ID,
		"name": f.Name,
		"fieldGroups": []map[string]any{
			{"fields": fields},
		},
	}
}

func formV2(f Form) map[string]any {
	fields := make([]map[string]any, 0, len(f.Fields))
	for _, fld := range f.Fields {
		fields = append(fields, map[string]any{
			"name":      fld.Name,
			"label":     fld.Label,
			"fieldType": fld.Type,
		})
	}
	return map[string]any{
		"guid": f.ID,
		"name": f.Name,
		"formFieldGroups": []map[string]any{
			{"fields": fields},
		},
	}
}

func tableJSON(t Table) map[string]any {
	columns := make([]map[string]any, 0, len(t.Columns))
	for _, c := range t.Columns {
		columns = append(columns, map[string]any{
			"id":    c.ID,
			"name":  c.Name,
			"label": c.Label,
			"type":  c.Type,
		})
	}
	return map[string]any{
		"id":       t.ID,
		"name":     t.Name,
		"rowCount": len(t.Rows),
		"columns":  columns,
	}
}

// formIDFromFilters digs the form guid out of the contact search filters.
// Both filter groups carry the guid; CONTAINS_TOKEN has it verbatim and
// BETWEEN carries guid::timestamp bounds.
func formIDFromFilters(body searchRequest) string {
	for _, group := range body.FilterGroups {
		for _, f := range group.Filters {
			if f.PropertyName != "hs_calculated_form_submissions" || f.Value == "" {
				continue
			}
			if i := strings.Index(f.Value, "::"); i >= 0 {
				return f.Value[:i]
			}
			return f.Value
		}
	}
	return ""
}

// afterOffset reads the search "after" value, which HubSpot accepts as either
// a number or a numeric string.
func afterOffset(after any) int {
	switch v := after.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, message, category string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "error",
		"message":  message,
		"category": category,
	})
}
