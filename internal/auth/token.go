// Package auth issues and verifies the signed bearer tokens used by the API.
//
// Tokens are HS256 JWTs carrying the profile id as the subject plus a custom
// role claim. The package is deliberately small: no refresh tokens, no key
// rotation, a single shared secret supplied by configuration. Verification
// failures collapse into two sentinel errors so that handlers can map them to
// a 401 without inspecting library internals.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors returned by ParseToken.
var (
	// ErrInvalidToken is returned for malformed, unsigned, tampered or
	// wrongly-signed tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when the token is well formed but past
	// its expiry.
	ErrExpiredToken = errors.New("token has expired")
)

// Claims is the payload embedded in every issued token. UserID mirrors the
// registered subject so middleware can read it without touching the
// RegisteredClaims.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the given profile id and role, valid for
// expireHours from now.
func GenerateToken(userID, role, secret string, expireHours int) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// ParseToken verifies signature and validity window and returns the claims.
// Every failure maps to ErrInvalidToken except a clean expiry, which maps to
// ErrExpiredToken.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
