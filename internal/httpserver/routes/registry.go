package routes

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/httpserver/mw"
)

type (
	Registrar func(r chi.Router, d deps.Deps)
	// Guard builds a middleware from the server dependencies. Guards are
	// resolved when the router is built, not at registration time.
	Guard func(d deps.Deps) func(http.Handler) http.Handler
)

type entry struct {
	name   string
	reg    Registrar
	guards []Guard
}

var registry []entry

// Register adds a named route group. Names must be unique.
func Register(name string, reg Registrar, guards ...Guard) {
	if slices.ContainsFunc(registry, func(e entry) bool { return e.name == name }) {
		panic(fmt.Sprintf("routes: %q registered twice", name))
	}
	registry = append(registry, entry{name: name, reg: reg, guards: guards})
}

// Names lists the registered groups in registration order.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// RegisterAll mounts every registered group, each in its own chi group so
// guards never leak between them. Called once per router.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		r.Group(func(r chi.Router) {
			for _, g := range e.guards {
				r.Use(g(d))
			}
			e.reg(r, d)
		})
	}
}

// HostGuard restricts a group to the configured Host headers.
func HostGuard(d deps.Deps) func(http.Handler) http.Handler {
	return mw.EnforceHost(d.AllowedHosts, d.Logger)
}

// CIDRGuard restricts a group to the configured client networks.
func CIDRGuard(d deps.Deps) func(http.Handler) http.Handler {
	return mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
}
