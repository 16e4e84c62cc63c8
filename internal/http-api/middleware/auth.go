package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"comichub/internal/http-api/service"
)

// AuthMiddleware is the bearer-token gate applied to every route except
// login, registration and the health check. It verifies the token and
// resolves its subject to an existing user, which it attaches to the
// request context for downstream handlers.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			c.Abort()
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization format should be: Bearer [token]"})
			c.Abort()
			return
		}
		if parts[1] == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token not provided"})
			c.Abort()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, service.ErrExpiredToken):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			case errors.Is(err, service.ErrInvalidToken):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			case errors.Is(err, service.ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			default:
				// Infrastructure failure, not a credential problem.
				c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
			}
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}
