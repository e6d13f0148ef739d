package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Recovery turns a panic anywhere down the handler chain into a logged 500.
// The probe handlers are small, but a panic there must not take the
// operational listener down with it.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
					)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
