// ABOUTME: HTTP handlers for the diagnostic JSON API.
// ABOUTME: Exposes forms, submissions, contacts, and HubDB tables as grid pages.

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/2389/hublens/internal/httperr"
	"github.com/2389/hublens/internal/hubspot"
)

type Handlers struct {
	hub *hubspot.Client
}

func NewHandlers(hub *hubspot.Client) *Handlers {
	return &Handlers{hub: hub}
}

func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/debug", h.getDebug)
		r.Get("/forms", h.listForms)
		r.Route("/forms/{formID}", func(r chi.Router) {
			r.Get("/", h.getForm)
			r.Get("/submissions", h.getSubmissions)
			r.Get("/contacts", h.getContacts)
		})
		r.Get("/tables", h.listTables)
		r.Route("/tables/{tableID}", func(r chi.Router) {
			r.Get("/", h.getTable)
			r.Get("/rows", h.getTableRows)
		})
	})
}

func (h *Handlers) getDebug(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"tokenConfigured": h.hub.TokenConfigured(),
		"tokenLength":     h.hub.TokenLength(),
	})
}

func (h *Handlers) listForms(w http.ResponseWriter, r *http.Request) {
	forms, reason := h.hub.ListForms(r.Context())

	resp := map[string]any{"forms": forms}
	if len(forms) == 0 {
		if reason != "" {
			resp["reason"] = reason
		}
		resp["debug"] = h.connectionDebug()
	}
	writeJSON(w, resp)
}

func (h *Handlers) getForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	if formID == "" {
		httperr.Write(w, http.StatusBadRequest, httperr.CodeInvalidRequest, "form id is required")
		return
	}

	form := h.hub.FormDetails(r.Context(), formID)
	writeJSON(w, map[string]any{
		"form": form,
		"debug": map[string]any{
			"requestedID": formID,
			"fieldCount":  len(form.Fields),
			"hasFields":   len(form.Fields) > 0,
		},
	})
}

func (h *Handlers) getSubmissions(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	if formID == "" {
		httperr.Write(w, http.StatusBadRequest, httperr.CodeInvalidRequest, "form id is required")
		return
	}

	limit := queryInt(r, "limit", 25)
	after := r.URL.Query().Get("after")
	page := queryInt(r, "page", 0)

	if r.URL.Query().Get("target") == "last" {
		writeJSON(w, h.hub.LastSubmissions(r.Context(), formID, limit))
		return
	}
	writeJSON(w, h.hub.Submissions(r.Context(), formID, limit, after, page))
}

func (h *Handlers) getContacts(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	if formID == "" {
		httperr.Write(w, http.StatusBadRequest, httperr.CodeInvalidRequest, "form id is required")
		return
	}

	limit := queryInt(r, "limit", 25)
	offset := queryInt(r, "offset", 0)
	writeJSON(w, h.hub.ContactsFromForm(r.Context(), formID, limit, offset))
}

func (h *Handlers) listTables(w http.ResponseWriter, r *http.Request) {
	tables, reason := h.hub.ListTables(r.Context())

	resp := map[string]any{"tables": tables}
	if len(tables) == 0 {
		if reason != "" {
			resp["reason"] = reason
		}
		resp["debug"] = h.connectionDebug()
	}
	writeJSON(w, resp)
}

func (h *Handlers) getTable(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableID")
	if tableID == "" {
		httperr.Write(w, http.StatusBadRequest, httperr.CodeInvalidRequest, "table id is required")
		return
	}
	writeJSON(w, map[string]any{"table": h.hub.TableDetails(r.Context(), tableID)})
}

func (h *Handlers) getTableRows(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableID")
	if tableID == "" {
		httperr.Write(w, http.StatusBadRequest, httperr.CodeInvalidRequest, "table id is required")
		return
	}

	limit := queryInt(r, "limit", 25)
	offset := queryInt(r, "offset", 0)
	writeJSON(w, h.hub.TableRows(r.Context(), tableID, limit, offset))
}

// connectionDebug is attached to empty catalog responses so the UI can show
// why nothing came back without a separate round trip.
func (h *Handlers) connectionDebug() map[string]any {
	return map[string]any{
		"tokenSet":    h.hub.TokenConfigured(),
		"tokenLength": h.hub.TokenLength(),
		"baseURL":     h.hub.BaseURL(),
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
