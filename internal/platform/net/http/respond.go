package http

import (
	"encoding/json"
	stdhttp "net/http"
	"strings"
)

// Status codes used by handlers
const (
	StatusOK                  = stdhttp.StatusOK
	StatusCreated             = stdhttp.StatusCreated
	StatusNoContent           = stdhttp.StatusNoContent
	StatusBadRequest          = stdhttp.StatusBadRequest
	StatusNotFound            = stdhttp.StatusNotFound
	StatusInternalServerError = stdhttp.StatusInternalServerError
)

// Content types used by handlers
const (
	ContentTypeJSON        = "application/json"
	ContentTypeJSONCharset = "application/json; charset=utf-8"
	ContentTypeText        = "text/plain; charset=utf-8"
)

// Response is a handler result. Zero fields are filled by Normalize
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Normalize defaults the status to 200 and lowercases header names
func (r Response) Normalize() Response {
	out := Response{StatusCode: r.StatusCode, Headers: make(map[string]string, len(r.Headers)), Body: r.Body}
	if out.StatusCode == 0 {
		out.StatusCode = StatusOK
	}
	for k, v := range r.Headers {
		out.Headers[strings.ToLower(k)] = v
	}
	return out
}

// Header returns a header value regardless of key case
func (r Response) Header(name string) string {
	if v, ok := r.Headers[strings.ToLower(name)]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Text returns a plain text response
func Text(status int, msg string) Response {
	return Response{StatusCode: status, Headers: map[string]string{"Content-Type": ContentTypeText}, Body: msg}
}

// JSON returns v encoded as JSON with the given status and content type
func JSON(status int, contentType string, v any) (Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: status, Headers: map[string]string{"Content-Type": contentType}, Body: string(b)}, nil
}

// NoContent returns an empty 204
func NoContent() Response { return Response{StatusCode: StatusNoContent} }

// write sends a normalized response to the live transport
func (r Response) write(w stdhttp.ResponseWriter) {
	for k, v := range r.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(r.StatusCode)
	if r.Body != "" && r.StatusCode != StatusNoContent {
		_, _ = w.Write([]byte(r.Body))
	}
}
