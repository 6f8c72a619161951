package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler returns a mount that serves pprof under prefix, e.g. "/debug"
func MountProfiler(prefix string) func(chi.Router) {
	return func(r chi.Router) {
		h := stdhttp.StripPrefix(prefix, mw.Profiler())
		r.Handle(prefix, h)
		r.Handle(prefix+"/*", h)
	}
}
