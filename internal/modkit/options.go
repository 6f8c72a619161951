package modkit

import (
	"net/http"

	phttp "todoapi/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// Option mutates build configuration for a module
type Option func(*buildCfg)

// buildCfg is internal wiring state for options
type buildCfg struct {
	name       string
	mw         []func(http.Handler) http.Handler
	mounts     []func(chi.Router)
	observer   phttp.Observer
	production bool
}

// WithName sets a module name used in logs
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithMiddlewares wraps the live listener in order, outermost first
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithMounts adds live-only endpoints (docs, metrics, profiler)
func WithMounts(m ...func(chi.Router)) Option {
	return func(c *buildCfg) { c.mounts = append(c.mounts, m...) }
}

// WithObserver receives every dispatched request
func WithObserver(o phttp.Observer) Option {
	return func(c *buildCfg) { c.observer = o }
}

// WithProduction hides error details in 500 responses
func WithProduction(on bool) Option {
	return func(c *buildCfg) { c.production = on }
}
