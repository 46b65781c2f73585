package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/logger"
)

const readyTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz reports whether the kv store answers. Reads would still succeed
// with defaults while it is down, but writes would not.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Error: "store unavailable"})
			return
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
