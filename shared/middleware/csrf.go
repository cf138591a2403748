package middleware

import (
	"net/http"
	"time"

	"github.com/kopdar-dev/kopdar/shared/csrf"
	"github.com/kopdar-dev/kopdar/shared/utils"
)

// CSRFProtect guards unsafe methods of requests that carry the access token
// cookie. API clients sending a bearer token have nothing a browser would
// attach on its own, so they pass through.
func CSRFProtect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		if _, err := r.Cookie(AccessTokenCookie); err != nil {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(csrf.CookieName)
		if err != nil || !csrf.ValidateToken(cookie.Value, r.Header.Get(csrf.HeaderName)) {
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IssueCSRFToken sets a fresh token cookie and returns the token in the body
// so single page apps can read it without parsing cookies.
func IssueCSRFToken(secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := csrf.GenerateToken()
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     csrf.CookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(24 * time.Hour),
			Secure:   secure,
			HttpOnly: false, // the client has to read it
			SameSite: http.SameSiteStrictMode,
		})
		utils.WriteJSON(w, http.StatusOK, map[string]string{"csrf_token": token})
	}
}
