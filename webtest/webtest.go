// Package webtest provides a synthetic in-process HTTP client for mason
// applications. Requests are dispatched straight into the handler; no
// network I/O is involved.
package webtest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/quarryhq/mason/webapp"
)

// TestApp wraps an application handler for synthetic requests.
type TestApp struct {
	handler http.Handler
}

// Response is the outcome of one synthetic request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Globals is the request-scoped globals object published by the app
	// during this request, or nil.
	Globals any
}

// New returns a TestApp dispatching into h.
func New(h http.Handler) *TestApp {
	return &TestApp{handler: h}
}

// Get performs a synthetic GET request against path.
func (a *TestApp) Get(path string) (*Response, error) {
	return a.Do(http.MethodGet, path, nil)
}

// Do performs a synthetic request. Status codes of 400 and above are
// reported as errors, mirroring how a functional test would treat them.
func (a *TestApp) Do(method, path string, body io.Reader) (*Response, error) {
	if a == nil || a.handler == nil {
		return nil, fmt.Errorf("webtest: no handler")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req := httptest.NewRequest(method, path, body)
	req, capture := webapp.WithCapture(req)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	res := rec.Result()
	defer func() { _ = res.Body.Close() }()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("webtest: read body: %w", err)
	}
	out := &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       data,
		Globals:    capture.Object(),
	}
	if res.StatusCode >= http.StatusBadRequest {
		return out, fmt.Errorf("webtest: %s %s: status %d", method, path, res.StatusCode)
	}
	return out, nil
}

// Text returns the response body as a string.
func (r *Response) Text() string { return string(r.Body) }
