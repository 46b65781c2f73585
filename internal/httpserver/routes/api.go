package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/navdir/internal/httpserver/mw"
)

func init() { Register("api", registerAPI, HostGuard) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/links", handlers.GetLinks(d))

		// Bearer-protected routes share one rate limiter so that password
		// guessing is throttled across all of them.
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(mw.RateLimitConfig{
				Burst:             d.AuthRateLimit.Burst,
				RefillPerIPPerMin: d.AuthRateLimit.RefillPerMin,
				MaxEntries:        4096,
				TrustProxy:        d.TrustProxy,
				Now:               d.TimeNow,
			}))
			r.Use(mw.RequireBearer(d.Store.CheckSecret, d.TrustProxy, d.Logger))
			r.Use(mw.BodyLimit(d.MaxBodyBytes))

			r.Get("/auth", handlers.Auth(d))
			r.Post("/links", handlers.PostLinks(d))
			r.Post("/password", handlers.Password(d))
		})
	})
}
