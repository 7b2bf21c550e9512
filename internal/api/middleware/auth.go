package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyAuth guards the issuance endpoints with a deployment-wide API key
// supplied in the X-API-Key header
type APIKeyAuth struct {
	apiKey string
}

// NewAPIKeyAuth creates the API key middleware
func NewAPIKeyAuth(apiKey string) *APIKeyAuth {
	return &APIKeyAuth{apiKey: apiKey}
}

// Authenticate rejects requests without a matching API key
func (m *APIKeyAuth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "UNAUTHORIZED"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
