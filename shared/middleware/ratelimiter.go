package middleware

import (
	"net/http"

	"github.com/threadlens/threadlens/shared/middleware/ratelimiter"
	"github.com/threadlens/threadlens/shared/utils"
)

// RateLimit rejects requests over budget, keyed by getIdentity (usually the
// client IP).
func RateLimit(rl *ratelimiter.ClientRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GlobalRateLimit applies one shared budget to every request.
func GlobalRateLimit(rl *ratelimiter.ClientRateLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}
