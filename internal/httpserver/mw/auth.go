package mw

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/navdir/internal/logger"
	"github.com/MrSnakeDoc/navdir/internal/utils"
)

// SecretChecker validates a presented bearer secret.
type SecretChecker func(ctx context.Context, secret string) bool

// RequireBearer rejects requests whose "Authorization: Bearer <secret>"
// header does not match. Failures are always 401 and never depend on the
// store state: an unreachable store falls back to the configured secret.
func RequireBearer(check SecretChecker, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret, ok := BearerToken(r)
			if !ok || !check(r.Context(), secret) {
				log.Warn("unauthorized request",
					logger.String("path", r.URL.Path),
					logger.String("remote_ip", utils.ClientIP(r, trustProxy)),
					logger.Bool("token_present", ok))
				w.Header().Set("WWW-Authenticate", `Bearer realm="navdir"`)
				deny(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token of an Authorization header. The scheme is
// case-insensitive.
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
