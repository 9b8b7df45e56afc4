package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "clipscout/internal/platform/errors"
	"clipscout/internal/platform/logger"
	pnet "clipscout/internal/platform/net"
	phttp "clipscout/internal/platform/net/http"
)

// RecoverJSON converts panics into a JSON 500 envelope and logs the stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			if v := recover(); v != nil {
				raw := debug.Stack()
				lines := strings.Split(string(raw), "\n")
				stack := strings.Join(lines, "\n\t")

				log := logger.C(r.Context())
				log.Error().
					Interface("panic", v).
					Msgf("panic recovered\n%s", stack)

				if reqID := pnet.RequestID(r.Context()); reqID != "" {
					w.Header().Set("X-Request-ID", reqID)
				}
				phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
