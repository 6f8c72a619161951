package module

import (
	"net/http"

	modkit "todoapi/internal/modkit"
	phttp "todoapi/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// Option is a configuration option for the todos module
type Option = modkit.Option

// WithMiddlewares sets the live middlewares for the module
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return modkit.WithMiddlewares(mw...)
}

// WithMounts adds live-only endpoints next to the todo routes
func WithMounts(m ...func(chi.Router)) Option { return modkit.WithMounts(m...) }

// WithObserver receives every dispatched request
func WithObserver(o phttp.Observer) Option { return modkit.WithObserver(o) }

// WithProduction hides error details in 500 responses
func WithProduction(on bool) Option { return modkit.WithProduction(on) }
