package middleware

import (
	"net/http"

	"todoapi/internal/platform/logger"
	pnet "todoapi/internal/platform/net"
)

// RequestContext copies the request id and caller address onto the context
// so logger.C picks them up. Mount after RequestID (and RealIP when used)
func RequestContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID, ip := pnet.RequestID(r.Context()), pnet.ClientIP(r)
			ctx := pnet.WithRequest(r.Context(), reqID, ip)
			ctx = logger.WithRequest(ctx, reqID, ip)
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
