package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kopdar-dev/kopdar/shared/domain"
	"github.com/kopdar-dev/kopdar/shared/utils"
)

type TokenDecoder interface {
	DecodeToken(jwtStr string) (*domain.Identity, error)
}

type key int

const identityKey key = 0

const AccessTokenCookie = "accessToken"

var errNoToken = errors.New("no token")

type Auth struct {
	tokens TokenDecoder
}

func NewAuth(tokens TokenDecoder) *Auth {
	return &Auth{tokens: tokens}
}

// NeedAuth rejects requests without a valid token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := a.extractIdentity(r)
			if errors.Is(err, errNoToken) {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// OptionalAuth populates the identity when the token is valid and
// otherwise lets the request through anonymously.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, err := a.extractIdentity(r); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Cookie first for browsers, then the Authorization header for API clients.
func (a *Auth) extractIdentity(r *http.Request) (*domain.Identity, error) {
	var tokenString string
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		tokenString = cookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return nil, errNoToken
	}
	return a.tokens.DecodeToken(tokenString)
}

func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetUserFromContext returns nil for anonymous requests.
func GetUserFromContext(r *http.Request) *domain.Identity {
	identity, _ := r.Context().Value(identityKey).(*domain.Identity)
	return identity
}
