package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

// APIKeyMiddleware enforces bearer-token authentication when keys are
// configured. With no keys every request passes through. The health endpoint
// is always exempt so probes work without credentials.
func APIKeyMiddleware(keys []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowed) == 0 || r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || !allowed[token] {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   "Authentication required",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
