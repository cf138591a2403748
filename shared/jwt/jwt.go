package jwt

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kopdar-dev/kopdar/shared/domain"
	internal_errors "github.com/kopdar-dev/kopdar/shared/errors"
	"github.com/kopdar-dev/kopdar/shared/logger"
)

// JwtService verifies tokens issued by the sign-in provider. NewToken exists
// for local development and tests; production tokens come from the provider.
type JwtService interface {
	NewToken(identity domain.Identity) (string, error)
	DecodeToken(jwtStr string) (*domain.Identity, error)
}

type Jwt struct {
	secretKey []byte
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey: []byte(secretKey), ttl: ttl}
}

type claims struct {
	Name      string `json:"name,omitempty"`
	AvatarUrl string `json:"avatar_url,omitempty"`
	jwt.RegisteredClaims
}

func (j *Jwt) NewToken(identity domain.Identity) (string, error) {
	now := time.Now()
	c := claims{
		Name:      identity.DisplayName,
		AvatarUrl: identity.AvatarUrl,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("can't sign token: %w", err)
	}
	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (*domain.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(jwtStr, &c, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		logger.Log.Debug("rejected token", "error", err)
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}
	if c.Subject == "" {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Token has no subject", StatusCode: http.StatusUnauthorized}
	}

	return &domain.Identity{Id: c.Subject, DisplayName: c.Name, AvatarUrl: c.AvatarUrl}, nil
}
