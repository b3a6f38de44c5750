package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/festy23/ideawaves/internal/response"
	"github.com/festy23/ideawaves/pkg/token"
)

// Context keys set by Auth.
const (
	UserIDKey    = "user_id"
	UserNameKey  = "user_name"
	UserEmailKey = "user_email"
)

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// Auth rejects requests without a valid bearer token and stores the caller in the context.
// The token is read from the Authorization header, or from the token query
// parameter for websocket upgrades where browsers cannot set headers.
func Auth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Error(c, "UNAUTHORIZED", "not authorized, no token", http.StatusUnauthorized)
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			response.Error(c, "UNAUTHORIZED", "not authorized, token failed", http.StatusUnauthorized)
			return
		}
		c.Set(UserIDKey, claims.UserID())
		c.Set(UserNameKey, claims.Name)
		c.Set(UserEmailKey, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" on public routes.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, value, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(value)
	}
	return c.Query("token")
}
