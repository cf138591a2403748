package middleware

import (
	"net/http"

	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	"github.com/kopdar-dev/kopdar/shared/middleware/ratelimiter"
	"github.com/kopdar-dev/kopdar/shared/utils"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
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

// GetUserIDFromContext keys limits by the authenticated user, so it must
// run after NeedAuth.
func GetUserIDFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", internal_errors.Unauthenticated()
	}
	return "user_" + user.Id, nil
}

func GetIP(r *http.Request) (string, error) {
	ip, err := utils.GetIP(r)
	if err != nil {
		return "", internal_errors.Validation("Can't determine client address")
	}
	return "ip_" + ip, nil
}
