// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	phttp "todoapi/internal/platform/net/http"
	"todoapi/internal/platform/net/http/bind"
)

type (
	// Response is the handler result type
	Response = phttp.Response

	// HTTPError is raised for responses with a status of 300 or more
	HTTPError = phttp.HTTPError

	// EmulatedRequest is an in-process request
	EmulatedRequest = phttp.EmulatedRequest
)

// Request is what a handler receives
type Request[T any] = phttp.Request[T]

// Handler is the platform handler type
type Handler[T any] = phttp.Handler[T]

// Router is a re-export of the platform router
type Router[T any] = phttp.Router[T]

// Options is a re-export of the platform router options
type Options[T any] = phttp.Options[T]

// Status codes and content types handlers reply with
const (
	StatusOK                  = phttp.StatusOK
	StatusCreated             = phttp.StatusCreated
	StatusNoContent           = phttp.StatusNoContent
	StatusBadRequest          = phttp.StatusBadRequest
	StatusNotFound            = phttp.StatusNotFound
	StatusInternalServerError = phttp.StatusInternalServerError

	ContentTypeJSON        = phttp.ContentTypeJSON
	ContentTypeJSONCharset = phttp.ContentTypeJSONCharset
	ContentTypeText        = phttp.ContentTypeText
)

// NewRouter builds an empty router
func NewRouter[T any](opt Options[T]) *Router[T] { return phttp.NewRouter(opt) }

// Text returns a plain text response
func Text(status int, msg string) Response { return phttp.Text(status, msg) }

// JSON returns v encoded as JSON
func JSON(status int, contentType string, v any) (Response, error) {
	return phttp.JSON(status, contentType, v)
}

// NoContent returns an empty 204
func NoContent() Response { return phttp.NoContent() }

// Bind decodes and validates a request body into T
func Bind[T any](body any) (T, error) { return bind.Decode[T](body) }

// AsHTTPError unwraps an *HTTPError
func AsHTTPError(err error) (*HTTPError, bool) { return phttp.AsHTTPError(err) }
