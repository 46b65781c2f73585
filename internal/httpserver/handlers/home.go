package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/render"
)

// Home renders the homepage from the current directory. The page is
// cacheable and carries an ETag so revalidation costs a store read but no
// body transfer.
func Home(d deps.Deps) http.HandlerFunc {
	cacheControl := fmt.Sprintf("public, max-age=%d", int(d.HomepageMaxAge.Seconds()))

	return func(w http.ResponseWriter, r *http.Request) {
		dir := d.Store.ReadDirectory(r.Context())

		page, err := d.Renderer.Homepage(dir)
		if err != nil {
			serverError(w, r, d, "failed to render homepage", err)
			return
		}

		w.Header().Set("Cache-Control", cacheControl)
		w.Header().Set("ETag", page.ETag)
		if etagMatch(r.Header.Get("If-None-Match"), page.ETag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page.Body)
	}
}

// Admin serves the static admin page.
func Admin(d deps.Deps) http.HandlerFunc {
	page := d.Renderer.Admin()
	etag := render.ETag(page)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("ETag", etag)
		if etagMatch(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

// etagMatch implements the weak comparison of If-None-Match.
func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
