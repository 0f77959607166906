package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cinemavault/internal/http-api/models"
	"cinemavault/internal/http-api/service"
)

const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
)

// Authenticate validates the bearer token and puts the normalized claims
// into the gin context. Requests without a valid token are rejected.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromRequest(c, authService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthenticate resolves claims when a valid token is present and
// stays silent otherwise; list endpoints use it so anonymous browsing works
// while is_saved still resolves for signed-in users.
func OptionalAuthenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromRequest(c, authService); ok {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin checks the role set by Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleKey)
		if !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id, empty for anonymous requests.
func UserID(c *gin.Context) string {
	if id, exists := c.Get(ContextUserIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

func claimsFromRequest(c *gin.Context, authService service.AuthService) (*service.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	// format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *service.Claims) {
	c.Set(ContextUserIDKey, claims.UserID)
	c.Set(ContextUsernameKey, claims.Username)
	c.Set(ContextRoleKey, claims.Role)
}
