// Package auth issues and verifies the bearer tokens used by the API.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ecotimes/news-api/internal/apperr"
)

// Claims represents the identity payload embedded in a token
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 tokens with a shared secret
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service. ttl is the fixed lifetime of
// issued tokens; there is no refresh mechanism.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed token embedding the identity. Expiry is fixed
// at issuance time plus the configured TTL.
func (s *TokenService) Issue(email, name string) (string, error) {
	if email == "" {
		return "", apperr.InvalidInput("email is required")
	}

	now := s.now()
	claims := &Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Unauthorized("failed to sign token")
	}
	return signed, nil
}

// Verify parses and validates a token, returning the embedded identity.
// Bad signatures, wrong algorithms and expired tokens all fail the same
// way so callers cannot distinguish them.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthorized("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))

	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	if claims.Email == "" {
		return nil, apperr.Unauthorized("token carries no identity")
	}

	return claims, nil
}
