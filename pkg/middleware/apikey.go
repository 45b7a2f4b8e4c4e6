package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/leadreports/lead-report-bot/pkg/apiErrors"
)

// APIKey guards a route with a static key carried in the X-API-Key header.
// An empty configured key disables the route entirely rather than leaving it
// open.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidAPIKey, "API key is not configured", nil)
				return
			}

			provided := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidAPIKey, "invalid API key", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
