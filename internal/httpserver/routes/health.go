package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/httpserver/handlers"
)

func init() { Register("health", registerHealth, CIDRGuard) }

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
}
