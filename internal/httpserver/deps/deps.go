package deps

import (
	"time"

	"github.com/MrSnakeDoc/navdir/internal/logger"
	"github.com/MrSnakeDoc/navdir/internal/render"
	"github.com/MrSnakeDoc/navdir/internal/store"
)

type Deps struct {
	Logger           logger.Logger
	StartTime        time.Time
	Version          string
	Commit           string
	BuildDate        string
	GoVersion        string
	Backend          string           // kv backend name, reported by /healthz
	TimeNow          func() time.Time // for testing, defaults to time.Now
	AllowedHosts     []string         // Host headers allowed to access the server
	AllowedCIDRS     []string         // IPs allowed to access healthz/readyz endpoints
	TrustProxy       bool             // honor forwarded client-IP headers; off unless behind a trusted proxy (e.g., cloudflared)
	Store            *store.Accessor  // directory and admin secret
	Renderer         *render.Renderer // homepage and admin page
	HomepageMaxAge   time.Duration    // Cache-Control max-age of GET /
	MaxBodyBytes     int64            // request body cap on writes
	ExposeErrorStack bool             // include "stack" in 500 bodies
	AuthRateLimit    AuthRateLimit    // token bucket on bearer-protected routes
}

// AuthRateLimit sizes the per-IP token bucket of bearer-protected routes.
type AuthRateLimit struct {
	Burst        int
	RefillPerMin int
}
