package auth

import (
	"encoding/json"
	"net/http"
)

// APIKey returns HTTP middleware that enforces API key authentication on
// the wrapped routes.
//
// Behaviour:
//   - If mode != "apikey" or key == "", all requests are allowed (pass-through).
//   - Otherwise the middleware reads the value of header from the request
//     and compares it to key.
//   - A missing, empty, or incorrect key returns 401 with a JSON detail body.
func APIKey(mode, header, key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Non-apikey modes or unconfigured key → allow everything.
			if mode != "apikey" || key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if r.Header.Get(header) != key {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "invalid api key"}) //nolint:errcheck
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
