// Package middleware provides thin adapters over chi middleware without leaking chi types
package middleware

import (
	"net/http"
	"time"

	pstrings "todoapi/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID attaches or propagates X-Request-ID and stores it on context
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP sets RemoteAddr to the upstream IP based on X-Forwarded-For headers
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Recover catches panics that escape a handler and returns 500
func Recover() func(http.Handler) http.Handler { return chimw.Recoverer }

// Heartbeat replies with 200 OK to GET path, useful for LB health checks
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors with sane defaults applied
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(
			o.AllowedHeaders,
			[]string{
				"Accept",
				"Content-Type",
				"X-Request-ID",
			},
		),
		ExposedHeaders:   o.ExposedHeaders,
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// Options selects the optional parts of the default chain
type Options struct {
	// TrustProxy takes the caller address from X-Forwarded-For / X-Real-IP
	TrustProxy bool
	// CORSOrigins enables CORS for the listed origins
	CORSOrigins []string
	// HealthPath answers load balancer probes, "" disables it
	HealthPath string
	// Slow marks slow requests in the access log
	Slow time.Duration
}

// Defaults is the chain mounted in front of the live router, outermost first
func Defaults(o Options) []func(http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{RequestID()}
	if o.TrustProxy {
		chain = append(chain, RealIP())
	}
	chain = append(chain,
		RequestContext(),
		AccessLogZerolog(AccessLogOptions{Slow: o.Slow}),
		Recover(),
	)
	if o.HealthPath != "" {
		chain = append(chain, Heartbeat(o.HealthPath))
	}
	if len(o.CORSOrigins) > 0 {
		chain = append(chain, CORS(CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	return chain
}
