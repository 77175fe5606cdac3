package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vipreviews/internal/app/reviews/util"
)

// TokenValidator проверяет JWT и возвращает claims
type TokenValidator interface {
	ValidateToken(token string) (*util.JWTClaims, error)
}

// AuthMiddleware проверяет JWT токен в запросах для Gin
type AuthMiddleware struct {
	validator TokenValidator
}

// NewAuthMiddleware создает новый middleware для аутентификации
func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
	}
}

// Authenticate проверяет JWT токен и требует указанную роль.
// Пустая роль пропускает любую аутентифицированную учётную запись.
func (m *AuthMiddleware) Authenticate(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Формат "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.validator.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if requiredRole != "" && claims.Role != requiredRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
