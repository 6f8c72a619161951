// Package http is the request router. Routes are registered once with On and
// served two ways: live over a chi mux (StartListening) or in-process through
// EmulateRequest. Both paths share matching and response normalization
package http

import (
	"context"
	"net"
	stdhttp "net/http"
	"strings"
	"sync"
	"time"

	perr "todoapi/internal/platform/errors"

	"github.com/go-chi/chi/v5"
)

// Request is what a handler receives
type Request[T any] struct {
	PathParams map[string]string
	// Body is the decoded JSON value (map, slice, string, float64, bool or nil)
	// or the raw string when an emulated request was not sent as JSON
	Body    any
	Headers map[string]string
	Tools   T
}

// Handler serves one route. Returned errors are unexpected failures
type Handler[T any] func(ctx context.Context, req Request[T]) (Response, error)

// Observer is notified after every dispatched request
type Observer interface {
	Observe(method, pattern string, status int, elapsed time.Duration)
}

// Options configures a Router
type Options[T any] struct {
	// DeriveTools builds the tools bundle for a live request
	DeriveTools func(r *stdhttp.Request) (T, error)
	// ProvideTools builds the tools bundle for an emulated request
	ProvideTools func(ctx context.Context) (T, error)
	// Production hides error details in live 500 responses
	Production bool
	// Middleware wraps the live mux, outermost first
	Middleware []func(stdhttp.Handler) stdhttp.Handler
	// Mounts add live-only endpoints such as docs or metrics
	Mounts   []func(chi.Router)
	Observer Observer
}

type route[T any] struct {
	method  string
	pattern string
	handler Handler[T]
}

// Router owns the route table and at most one live listener
type Router[T any] struct {
	opt Options[T]

	mu     sync.Mutex
	routes []route[T]
	srv    *stdhttp.Server
	ln     net.Listener
	served chan error
}

// NewRouter returns an empty router
func NewRouter[T any](opt Options[T]) *Router[T] {
	return &Router[T]{opt: opt}
}

// On registers handler for method and pattern. Patterns are split on "/",
// segments starting with ":" capture a variable. Glob characters are rejected
func (r *Router[T]) On(method, pattern string, h Handler[T]) error {
	method = strings.ToUpper(strings.TrimSpace(method))
	switch {
	case method == "":
		return perr.Misusef("route method is required")
	case h == nil:
		return perr.Misusef("route %s %s has no handler", method, pattern)
	case pattern == "":
		return perr.Misusef("route %s has an empty pattern", method)
	case strings.ContainsAny(pattern, "*+?()"):
		return perr.Misusef(`Pattern-matching characters, such as "*", "+", "?", "(", and ")" are currently not supported: %q`, pattern)
	}

	r.mu.Lock()
	r.routes = append(r.routes, route[T]{method: method, pattern: pattern, handler: h})
	r.mu.Unlock()
	return nil
}

// Patterns lists registrations as "METHOD pattern" in insertion order
func (r *Router[T]) Patterns() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt.method+" "+rt.pattern)
	}
	return out
}

// find returns the first registration matching method and path
func (r *Router[T]) find(method, path string) (route[T], map[string]string, bool) {
	r.mu.Lock()
	routes := r.routes
	r.mu.Unlock()

	for _, rt := range routes {
		if !strings.EqualFold(rt.method, method) {
			continue
		}
		if params, ok := Match(rt.pattern, path); ok {
			return rt, params, true
		}
	}
	return route[T]{}, nil, false
}

// invoke runs the handler and normalizes its response
func (r *Router[T]) invoke(ctx context.Context, rt route[T], req Request[T]) (Response, error) {
	start := time.Now()
	resp, err := rt.handler(ctx, req)
	if err == nil {
		resp = resp.Normalize()
	}
	if r.opt.Observer != nil {
		status := resp.StatusCode
		if err != nil {
			status = StatusInternalServerError
		}
		r.opt.Observer.Observe(rt.method, rt.pattern, status, time.Since(start))
	}
	return resp, err
}
