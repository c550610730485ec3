package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/cloudtrim/cloudtrim/internal/respond"
)

// Recoverer turns a panic anywhere below it into a JSON 500.
// In production the body says "Internal server error"; otherwise it carries
// the panic value.
func Recoverer(logger *slog.Logger, production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				respond.InternalError(w, rvr, production)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
