package middleware

import (
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"
)

// Global token bucket: 2 requests per second with a burst of 20.
var limiter = rate.NewLimiter(2, 20)

// RateLimit rejects requests with 429 once the bucket is drained.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"message": "The API is at capacity, try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
