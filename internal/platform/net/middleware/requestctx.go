package middleware

import (
	"net/http"

	"clipscout/internal/platform/logger"
	pnet "clipscout/internal/platform/net"
)

// RequestContext copies the request id onto the logger context so request
// scoped logs emitted through logger.C carry request_id
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rid := pnet.RequestID(r.Context()); rid != "" {
			r = r.WithContext(logger.WithRequest(r.Context(), rid))
		}
		next.ServeHTTP(w, r)
	})
}
