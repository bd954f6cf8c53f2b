// Package auth implements the bearer-token boundary of the API. Identity
// management itself (users, roles, sign-in) lives outside this service; the
// core only validates tokens and exposes the caller's identity via context.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/promptshelf/promptshelf/internal/errors"
)

// Claims carries the authenticated caller's identity. Email doubles as the
// commit author recorded on every append.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Sign mints an HS256 token for the given identity.
func Sign(secret, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse validates a token and returns its claims.
func Parse(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewUnauthorized("invalid or missing token")
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, errors.NewUnauthorized("token expired")
	}
	if claims.Email == "" {
		return nil, errors.NewUnauthorized("token has no identity")
	}
	return claims, nil
}
