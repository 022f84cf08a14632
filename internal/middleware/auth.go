package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the opaque session token for the
// recipes surface.
const SessionCookie = "session_token"

// TokenClaims holds the identity extracted from a validated credential.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
}

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*TokenClaims, error)
}

// SessionValidator resolves an opaque session token to a user id.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthMiddleware creates a middleware that validates bearer JWT tokens.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, validator)
		if !ok {
			return
		}
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// SessionAuth validates the session cookie, falling back to a bearer token
// when no cookie is present.
func SessionAuth(tokens TokenValidator, sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
			userID, err := sessions.ValidateSession(c.Request.Context(), cookie)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
				c.Abort()
				return
			}
			c.Set("user_id", userID)
			c.Next()
			return
		}

		claims, ok := bearerClaims(c, tokens)
		if !ok {
			return
		}
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

func bearerClaims(c *gin.Context, validator TokenValidator) (*TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
		c.Abort()
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		c.Abort()
		return nil, false
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return nil, false
	}
	return claims, true
}

// CurrentUserID returns the authenticated user id set by the auth middleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}
