// ABOUTME: Surface detection for request logging.
// ABOUTME: Maps an API path to the diagnostic surface it belongs to.

package logging

import "strings"

// SurfaceFromPath determines which diagnostic surface a request hits.
func SurfaceFromPath(path string) string {
	switch {
	case strings.Contains(path, "/submissions"):
		return "submissions"
	case strings.Contains(path, "/contacts"):
		return "contacts"
	case strings.Contains(path, "/rows"):
		return "rows"
	case strings.HasPrefix(path, "/api/forms"):
		return "forms"
	case strings.HasPrefix(path, "/api/tables"):
		return "tables"
	case strings.HasPrefix(path, "/api/debug"):
		return "debug"
	}
	return "unknown"
}
