// ABOUTME: Tests for the diagnostic UI pages.
// ABOUTME: Verifies template rendering and the request log viewer.

package web

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/2389/hublens/internal/store"
)

func newTestRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "web_test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	r := chi.NewRouter()
	NewHandlers(s).RegisterRoutes(r)
	return r, s
}

func TestIndexPage(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"form-select", "table-select", "pg-last", "HubLens"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestLogsPage(t *testing.T) {
	router, s := newTestRouter(t)

	s.LogRequest(&store.RequestLog{Surface: "submissions", Method: "GET", Path: "/api/forms/f1/submissions", StatusCode: 200, DurationMs: 42})
	s.LogRequest(&store.RequestLog{Surface: "tables", Method: "GET", Path: "/api/tables", StatusCode: 500, DurationMs: 10, Error: "boom"})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/logs", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "/api/forms/f1/submissions") || !strings.Contains(body, "boom") {
		t.Errorf("logs page missing entries:\n%s", body)
	}
}

func TestLogsPage_SurfaceFilter(t *testing.T) {
	router, s := newTestRouter(t)

	s.LogRequest(&store.RequestLog{Surface: "submissions", Method: "GET", Path: "/api/forms/f1/submissions", StatusCode: 200, DurationMs: 42})
	s.LogRequest(&store.RequestLog{Surface: "tables", Method: "GET", Path: "/api/tables", StatusCode: 200, DurationMs: 10})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/logs?surface=tables", nil))

	body := rr.Body.String()
	if strings.Contains(body, "/api/forms/f1/submissions") {
		t.Errorf("surface filter leaked other surfaces")
	}
	if !strings.Contains(body, "/api/tables") {
		t.Errorf("filtered surface missing")
	}
}
