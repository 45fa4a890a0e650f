package http //nolint:revive // package name conflicts with stdlib but is acceptable in this context

import (
	"net/http"
	"net/url"
	"strings"
)

// corsMiddleware reflects the Origin header for allowed origins. The
// measurement API is mutating, so preflights for PUT and DELETE must
// succeed for any browser frontend served from another host.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && s.originAllowed(origin) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			h.Set("Access-Control-Max-Age", "86400")
			h.Set("Vary", "Origin")
		}

		if isPreflight(r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isPreflight reports whether the request is a CORS preflight rather
// than a plain OPTIONS call.
func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

// originAllowed checks the origin against the configured patterns.
func (s *Server) originAllowed(origin string) bool {
	for _, pattern := range s.config.CORS.AllowedOrigins {
		if matchOrigin(origin, pattern) {
			return true
		}
	}
	return false
}

// matchOrigin matches an origin against a configured pattern. A
// pattern is an exact origin, the catch-all "*", or a host wildcard
// like "*.example.com". Host wildcards match subdomains only, never
// the bare apex.
func matchOrigin(origin, pattern string) bool {
	if pattern == "*" || origin == pattern {
		return true
	}

	if !strings.HasPrefix(pattern, "*.") {
		return false
	}
	suffix := strings.ToLower(pattern[1:]) // ".example.com"
	host := strings.ToLower(originHost(origin))
	return strings.HasSuffix(host, suffix) && len(host) > len(suffix)
}

// originHost extracts the bare host from an origin value, dropping
// scheme and port.
func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err == nil && u.Hostname() != "" {
		return u.Hostname()
	}

	// Origins without a scheme do not parse into a host; strip the
	// port manually.
	host := origin
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}
