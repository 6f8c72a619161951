package modkit

import (
	"net/http"

	phttp "todoapi/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name       string
	Mw         []func(http.Handler) http.Handler
	Mounts     []func(chi.Router)
	Observer   phttp.Observer
	Production bool
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return Built{
		Name:       c.name,
		Mw:         append(([]func(http.Handler) http.Handler)(nil), c.mw...),
		Mounts:     append(([]func(chi.Router))(nil), c.mounts...),
		Observer:   c.observer,
		Production: c.production,
	}
}

// RouterOptions copies the live wiring into router options for tools type T
func RouterOptions[T any](b Built) phttp.Options[T] {
	return phttp.Options[T]{
		Production: b.Production,
		Middleware: b.Mw,
		Mounts:     b.Mounts,
		Observer:   b.Observer,
	}
}
