// ABOUTME: HTTP handlers for the diagnostic UI pages.
// ABOUTME: Serves the grid explorer and the request log viewer.

package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/2389/hublens/internal/store"
)

type Handlers struct {
	store *store.Store
}

func NewHandlers(s *store.Store) *Handlers {
	return &Handlers{store: s}
}

func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.index)
	r.Get("/logs", h.logsList)
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	renderPage(w, "index", nil)
}

func (h *Handlers) logsList(w http.ResponseWriter, r *http.Request) {
	surface := r.URL.Query().Get("surface")
	method := r.URL.Query().Get("method")
	pathPrefix := r.URL.Query().Get("path")
	statusCode := 0
	if sc := r.URL.Query().Get("status"); sc != "" {
		fmt.Sscanf(sc, "%d", &statusCode)
	}

	logs, err := h.store.GetRequestLogs(&store.RequestLogQuery{
		Limit:      100,
		Surface:    surface,
		Method:     method,
		PathPrefix: pathPrefix,
		StatusCode: statusCode,
	})
	if err != nil {
		http.Error(w, "Failed to load request logs", 500)
		return
	}

	stats, err := h.store.GetRequestLogStats()
	if err != nil {
		http.Error(w, "Failed to load request log stats", 500)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	renderPage(w, "logs", map[string]any{
		"Logs":    logs,
		"Stats":   stats,
		"Surface": surface,
		"Method":  method,
		"Path":    pathPrefix,
		"Status":  statusCode,
	})
}
