// ABOUTME: HTTP transport for the HubSpot REST API.
// ABOUTME: Bearer-authenticated GET/POST with JSON decoding and a fixed timeout.

package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production HubSpot API host.
const DefaultBaseURL = "https://api.hubapi.com"

const requestTimeout = 30 * time.Second

// Diagnostic reason codes surfaced in debug blocks when a call degrades to
// an empty result.
const (
	ReasonTokenNotConfigured = "token_not_configured"
	ReasonUpstreamError      = "upstream_error"
)

// Client issues authenticated requests against one HubSpot account.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient builds a client for the given base URL and private-app token.
// An empty baseURL falls back to the production host. The token is carried
// explicitly; there is no process-wide credential.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// TokenConfigured reports whether a usable bearer token is present.
func (c *Client) TokenConfigured() bool {
	return c.token != ""
}

// TokenLength is exposed for operator diagnostics only, never for
// authorization decisions.
func (c *Client) TokenLength() int {
	return len(c.token)
}

// BaseURL returns the upstream host this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Result is the decoded outcome of one upstream call. OK means a 2xx status
// with no transport error; Data holds the decoded JSON body, which is a
// map for most endpoints but a bare array on the legacy v2 forms API.
type Result struct {
	OK   bool
	Code int
	Data any
	Err  error
}

// Map returns the body as a JSON object, nil when it is not one.
func (r Result) Map() map[string]any {
	m, _ := r.Data.(map[string]any)
	return m
}

// List returns the body as a JSON array, nil when it is not one.
func (r Result) List() []any {
	l, _ := r.Data.([]any)
	return l
}

func (c *Client) get(ctx context.Context, path string, query url.Values) Result {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{Err: err}
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body any) Result {
	payload, err := json.Marshal(body)
	if err != nil {
		return Result{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return Result{Err: err}
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) Result {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Result{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Code: resp.StatusCode, Err: err}
	}

	var data any
	if len(raw) > 0 {
		// A body that fails to decode is treated as absent, not fatal; the
		// normalizers degrade on missing substructure.
		json.Unmarshal(raw, &data)
	}

	return Result{
		OK:   resp.StatusCode >= 200 && resp.StatusCode < 300,
		Code: resp.StatusCode,
		Data: data,
	}
}
