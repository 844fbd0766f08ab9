package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kingsley6145/gamebridge-admin/internal/shared/response"
	"github.com/Kingsley6145/gamebridge-admin/pkg/jwt"
)

// AuthMiddleware validates the bearer token and stores the actor on the
// context for handlers that need it (uploads in particular).
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
