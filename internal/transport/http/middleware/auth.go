package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-community/internal/core/domain"
)

const bearerPrefix = "Bearer "

// AuthFunc resolves a raw bearer token to a viewer.
type AuthFunc func(c *gin.Context, token string) (domain.Viewer, error)

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(identify AuthFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "AUTH_TOKEN_MISSING", "authorization header is missing or malformed")
			return
		}

		viewer, err := identify(c, token)
		if err != nil {
			abortUnauthorized(c, "AUTH_TOKEN_INVALID", "access token is invalid or expired")
			return
		}

		c.Set(ViewerKey, viewer)
		c.Next()
	}
}

// OptionalAuth resolves a bearer token when present. Requests without an
// Authorization header proceed as anonymous; a header that is present but
// invalid is still rejected rather than silently downgraded.
func OptionalAuth(identify AuthFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Set(ViewerKey, domain.Anonymous)
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "AUTH_TOKEN_MISSING", "authorization header is malformed")
			return
		}

		viewer, err := identify(c, token)
		if err != nil {
			abortUnauthorized(c, "AUTH_TOKEN_INVALID", "access token is invalid or expired")
			return
		}

		c.Set(ViewerKey, viewer)
		c.Next()
	}
}

// GetViewer returns the viewer identity resolved by the auth middleware.
func GetViewer(c *gin.Context) domain.Viewer {
	if value, exists := c.Get(ViewerKey); exists {
		if viewer, ok := value.(domain.Viewer); ok {
			return viewer
		}
	}
	return domain.Anonymous
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":     code,
		"message":  message,
		"trace_id": GetTraceID(c),
	})
}
