package http

import (
	stdhttp "net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler returns the live mux. Each registered pattern is mounted on chi
// and every hit is re-resolved through Match so the first registration wins
// exactly as it does for emulated requests. Paths no pattern covers get
// chi's own 404 or 405
func (r *Router[T]) Handler() stdhttp.Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handlerLocked()
}

func (r *Router[T]) handlerLocked() stdhttp.Handler {
	m := chi.NewRouter()
	m.Use(r.opt.Middleware...)
	for _, mount := range r.opt.Mounts {
		mount(m)
	}

	live := stdhttp.HandlerFunc(r.serveLive)
	seen := map[string]bool{}
	for _, rt := range r.routes {
		// request paths always start with "/", so other patterns are
		// reachable only through EmulateRequest
		if !strings.HasPrefix(rt.pattern, "/") {
			continue
		}
		p := chiPattern(rt.pattern)
		key := rt.method + " " + p
		if seen[key] {
			continue
		}
		seen[key] = true
		chi.RegisterMethod(rt.method)
		m.Method(rt.method, p, live)
	}
	return m
}

// chiPattern rewrites ":name" segments as positional chi params; the names
// are irrelevant because variables are captured by Match
func chiPattern(pattern string) string {
	segs := strings.Split(pattern, "/")
	n := 0
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = "{p" + strconv.Itoa(n) + "}"
			n++
		}
	}
	return strings.Join(segs, "/")
}
