package middleware

import (
	"errors"
	"net/http"
	"strings"

	userService "anoa.com/videohub/internal/modules/user/service"
	"anoa.com/videohub/pkg/apperror"
	"anoa.com/videohub/pkg/response"
	"github.com/gin-gonic/gin"
)

const claimsKey = "auth_claims"

type AuthMiddleware struct {
	tokens *userService.TokenManager
}

func NewAuthMiddleware(tokens *userService.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		claims, err := m.tokens.Parse(c.Request.Context(), tokenString, userService.TokenAccess)
		if err != nil {
			if errors.Is(err, apperror.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			} else {
				response.ResponseError(c, err)
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*userService.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*userService.Claims)
	return claims, ok
}
