package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/httpserver/handlers"
)

func init() { Register("home", registerHome, HostGuard) }

func registerHome(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Home(d))
	r.Get("/admin", handlers.Admin(d))
}
