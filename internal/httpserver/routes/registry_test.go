package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/logger"
)

func TestBuiltinGroupsRegistered(t *testing.T) {
	assert.ElementsMatch(t, []string{"api", "health", "home"}, Names())
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	assert.Panics(t, func() { Register("api", func(chi.Router, deps.Deps) {}) })
}

func TestGuardsStayInTheirGroup(t *testing.T) {
	saved := registry
	t.Cleanup(func() { registry = saved })
	registry = nil

	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	Register("guarded", func(r chi.Router, _ deps.Deps) { r.Get("/guarded", ok) }, HostGuard)
	Register("open", func(r chi.Router, _ deps.Deps) { r.Get("/open", ok) })

	r := chi.NewRouter()
	RegisterAll(r, deps.Deps{Logger: logger.NewNop(), AllowedHosts: []string{"links.example.com"}})

	for path, want := range map[string]int{"/guarded": http.StatusForbidden, "/open": http.StatusOK} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Host = "other.example.com"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, want, rec.Code, path)
	}
}
