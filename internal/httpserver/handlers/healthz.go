package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Backend       string  `json:"backend,omitempty"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
}

// Healthz is a liveness probe: it never touches the kv store.
func Healthz(d deps.Deps) http.HandlerFunc {
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}
	body := healthzResponse{
		Status:    "ok",
		Backend:   d.Backend,
		Version:   d.Version,
		Commit:    d.Commit,
		BuildDate: d.BuildDate,
		GoVersion: d.GoVersion,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		resp := body
		resp.UptimeSeconds = now().Sub(d.StartTime).Round(time.Second).Seconds()
		writeJSON(w, http.StatusOK, resp)
	}
}
