// Package net provides utilities for working with request contexts
package net

import (
	"context"
	stdnet "net"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyRemoteIP ctxKey = "remote_ip"

// WithRequest annotates context with the request id and caller address
func WithRequest(ctx context.Context, reqID, remoteIP string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if remoteIP != "" {
		ctx = context.WithValue(ctx, keyRemoteIP, remoteIP)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// RemoteIP returns the caller address on the context if present
func RemoteIP(ctx context.Context) string {
	if v, ok := ctx.Value(keyRemoteIP).(string); ok {
		return v
	}
	return ""
}

// ClientIP returns the host part of r.RemoteAddr, or RemoteAddr as is when
// it carries no port (RealIP rewrites it that way)
func ClientIP(r *http.Request) string {
	host, _, err := stdnet.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
