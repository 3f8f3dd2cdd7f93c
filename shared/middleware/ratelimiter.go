package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nitespot-dev/nitespot/shared/middleware/ratelimiter"
	"github.com/nitespot-dev/nitespot/shared/utils"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if viewer := GetViewerFromContext(r); viewer.Admin() { // disable for admin
				next.ServeHTTP(w, r)
				return
			}

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

func GlobalRateLimit(rl *ratelimiter.UserRateLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// Possible if caller was authorized with previous middleware
func GetUserIDFromContext(r *http.Request) (string, error) {
	viewer := GetViewerFromContext(r)
	if viewer == nil {
		return "", errors.New("can't get user id")
	}
	return fmt.Sprintf("user_%s", viewer.Id), nil
}

// GetIP extracts the client IP for per-IP limits
func GetIP(r *http.Request) (string, error) {
	return utils.GetIP(r)
}
