package mw

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/navdir/internal/logger"
	"github.com/MrSnakeDoc/navdir/internal/utils"
)

// Log returns a middleware that logs one http_request line per request.
// Probes are logged at debug level and server errors at error level.
func Log(loggerClient logger.Logger, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				// handler returned without writing anything
				status = http.StatusOK
			}
			logFn := levelFor(loggerClient, r.URL.Path, status)
			logFn("http_request",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", status),
				logger.Int("bytes", ww.BytesWritten()),
				logger.Duration("duration", time.Since(start)),
				logger.String("remote_ip", utils.ClientIP(r, trustProxy)),
				logger.String("user_agent", r.UserAgent()),
				logger.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func levelFor(l logger.Logger, path string, status int) func(string, ...logger.Field) {
	switch {
	case status >= 500:
		return l.Error
	case path == "/healthz" || path == "/readyz":
		return l.Debug
	default:
		return l.Info
	}
}
