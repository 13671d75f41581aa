package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// CORS adds Access-Control headers for allowed origins and short-circuits OPTIONS requests.
// The browser client sends the session token in the Authorization header, so
// that header must be allowed.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := slices.Contains(allowedOrigins, "*")
	normalized := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		normalized = append(normalized, strings.ToLower(origin))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowAll || slices.Contains(normalized, strings.ToLower(origin))) {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
