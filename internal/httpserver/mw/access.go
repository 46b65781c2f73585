package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/navdir/internal/logger"
	"github.com/MrSnakeDoc/navdir/internal/utils"
)

func passthrough(next http.Handler) http.Handler { return next }

// gate rejects with a JSON 403 every request whose subject (client IP,
// Host header, ...) is refused by allow.
func gate(name string, log logger.Logger, subject func(*http.Request) string, allow func(string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := subject(r)
			if !allow(s) {
				log.Debug("request rejected",
					logger.String("guard", name),
					logger.String("subject", s),
					logger.String("path", r.URL.Path))
				deny(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AllowOnlyCIDRS allows only specific IPs/CIDRs. If the list is empty, it does NOT filter (passthrough).
// trustProxy should be true when running behind a trusted reverse proxy/tunnel (e.g., cloudflared).
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		return passthrough
	}
	log.Debug("client ip allowlist enabled",
		logger.Int("rules", len(allowed)),
		logger.Bool("trust_proxy", trustProxy))

	clientIP := func(r *http.Request) string { return utils.ClientIP(r, trustProxy) }
	return gate("cidr", log, clientIP, m.Allow)
}

// EnforceHost allows requests only if the Host header matches one of the
// allowed hosts. Patterns like "*.example.com" match any subdomain.
// An empty list is a passthrough.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		if p := normalizeHost(h); p != "" {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return passthrough
	}
	log.Debug("host allowlist enabled", logger.Int("hosts", len(patterns)))

	host := func(r *http.Request) string { return normalizeHost(r.Host) }
	allow := func(h string) bool {
		for _, p := range patterns {
			if matchHost(h, p) {
				return true
			}
		}
		return false
	}
	return gate("host", log, host, allow)
}

// normalizeHost lowercases and drops the port and any trailing dot.
func normalizeHost(h string) string {
	h = utils.ParseHostNoPort(strings.TrimSpace(h))
	return strings.TrimSuffix(strings.ToLower(h), ".")
}

// matchHost reports whether host matches pattern, ignoring case.
func matchHost(host, pattern string) bool {
	host = strings.ToLower(host)
	pattern = strings.ToLower(pattern)

	if host == pattern {
		return true
	}
	// *.example.com matches sub.example.com but not example.com
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return strings.HasSuffix(host, suffix) && len(host) > len(suffix)
	}
	return false
}
