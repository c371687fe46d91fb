package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastebook/backend/internal/types"
)

// SessionCookie is the single well-known cookie key carrying the session
// token for browser clients. API clients may send the same token as a
// bearer header instead.
const SessionCookie = "session_token"

const (
	userIDKey    = "user_id"
	sessionIDKey = "session_id"
)

// TokenValidator resolves a session token to an identity.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

// RequireAuth resolves the request identity and aborts with 401 when it
// is anonymous.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := resolve(c, validator)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access unauthorized."})
			c.Abort()
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(sessionIDKey, claims.SessionID)
		c.Next()
	}
}

// OptionalAuth resolves the request identity when a valid token is
// present and proceeds as anonymous otherwise.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := resolve(c, validator); ok {
			c.Set(userIDKey, claims.UserID)
			c.Set(sessionIDKey, claims.SessionID)
		}
		c.Next()
	}
}

// resolve extracts the token from the bearer header or the session cookie
// and validates it. Missing, malformed, and stale tokens all resolve to
// anonymous.
func resolve(c *gin.Context, validator TokenValidator) (*types.TokenClaims, bool) {
	token := ""
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}
	if token == "" {
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			token = cookie
		}
	}
	if token == "" {
		return nil, false
	}

	claims, err := validator.ValidateToken(c.Request.Context(), token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CurrentSessionID returns the session id of the authenticated request.
func CurrentSessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(sessionIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
