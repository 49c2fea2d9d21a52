package middleware

import (
	"strings"

	"acc-panel/internal/models"
	"acc-panel/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to a live session. Every auth
// failure is reported uniformly as an expired session.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "session expired"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "session expired"})
			c.Abort()
			return
		}

		session, err := authService.GetSession(parts[1])
		if err != nil {
			c.JSON(401, gin.H{"error": "session expired"})
			c.Abort()
			return
		}

		c.Set("user", &session.User)
		c.Set("user_id", session.UserID)
		c.Set("session", session)

		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			c.JSON(401, gin.H{"error": "session expired"})
			c.Abort()
			return
		}

		userRole := user.(*models.User).Role
		hasRole := false
		for _, role := range roles {
			if userRole == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			c.JSON(403, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
