// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication on top of the signed tokens
// issued by the auth service. Verified identity is stashed in the Gin context
// under the "userID" and "role" keys so downstream middleware (rate limiting,
// idempotency) and handlers can read it without re-parsing the token.
//
// Three flavors are provided:
//   - Auth: hard requirement; aborts with 401 when the token is missing/invalid.
//   - OptionalAuth: best effort; attaches identity when a valid token is present
//     and stays silent otherwise (used on public read endpoints).
//   - RequireAdmin: authorization gate layered after Auth; aborts with 403
//     unless the verified role is admin.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mindgenz/go-mind-backend/internal/auth"
	"github.com/mindgenz/go-mind-backend/internal/domain"
)

// Context keys under which verified identity is stashed. The string values are
// part of the middleware contract: KeyByUserOrIP and the idempotency validator
// read "userID" directly.
const (
	ctxKeyUserID = "userID"
	ctxKeyRole   = "role"
)

// UserID returns the authenticated user id stashed by Auth or OptionalAuth.
// The second return value indicates presence.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// Role returns the verified role for the current request, or the empty string
// when the request is unauthenticated.
func Role(c *gin.Context) string {
	v, ok := c.Get(ctxKeyRole)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Scheme matching is case-insensitive per RFC 7235.
func bearerToken(c *gin.Context) (string, bool) {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

// Auth returns middleware that requires a valid bearer token signed with the
// given secret. On success it stashes the user id and role in the context; on
// failure it aborts with 401 and a compact error body.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthorized",
				"message": "missing bearer token",
			})
			return
		}
		claims, err := auth.ParseToken(tok, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthorized",
				"message": "invalid or expired token",
			})
			return
		}
		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth returns middleware that attaches identity when a valid bearer
// token is present but never rejects the request. Invalid tokens are treated
// the same as absent ones.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok, ok := bearerToken(c); ok {
			if claims, err := auth.ParseToken(tok, secret); err == nil {
				c.Set(ctxKeyUserID, claims.UserID)
				c.Set(ctxKeyRole, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireAdmin returns middleware that aborts with 403 unless the verified
// role is admin. It must be installed after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    "forbidden",
				"message": "admin access required",
			})
			return
		}
		c.Next()
	}
}
