package pipeline

import (
	"net/http"
	"net/url"
)

// Request describes an outbound API call. The body is held as bytes so a
// replay after credential renewal reuses exactly the original payload.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    []byte
	Headers map[string]string

	// Anonymous requests (login, refresh) carry no bearer credential and a
	// 401 on them is returned unchanged instead of triggering renewal.
	Anonymous bool
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
