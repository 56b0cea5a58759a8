// ABOUTME: Standardized JSON error responses for the diagnostic API.
// ABOUTME: Machine-readable codes so the UI can react to failure classes.

package httperr

import (
	"encoding/json"
	"net/http"
)

// Response is the error body every API endpoint returns on failure.
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error codes surfaced by the diagnostic API.
const (
	CodeInvalidRequest      = "invalid_request"
	CodeNotFound            = "not_found"
	CodeTokenNotConfigured  = "token_not_configured"
	CodeUpstreamError       = "upstream_error"
	CodeUnsupportedEndpoint = "unsupported_endpoint"
	CodeInternal            = "internal_error"
)

// Write sends a standardized error response.
func Write(w http.ResponseWriter, status int, code, message string) {
	writeResponse(w, Response{Code: code, Message: message, Status: status})
}

// WriteDetails sends an error response with extra operator-facing context.
// End-user-visible messages stay generic; Details is for diagnostics only.
func WriteDetails(w http.ResponseWriter, status int, code, message, details string) {
	writeResponse(w, Response{Code: code, Message: message, Status: status, Details: details})
}

func writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
