package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/IsaacLanzoni/projeto-belezza/internal/handler"
	authservice "github.com/IsaacLanzoni/projeto-belezza/internal/service/auth"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/auth"
)

type AuthMiddleware struct {
	authService *authservice.Service
}

func NewAuthMiddleware(authService *authservice.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the JWT token and sets user info in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID.String())
		c.Set("userEmail", claims.Email)
		c.Set("userRole", string(claims.Role))
		c.Next()
	}
}

// RequireRole restricts a route group to users carrying the given role.
func (m *AuthMiddleware) RequireRole(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != string(role) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}
