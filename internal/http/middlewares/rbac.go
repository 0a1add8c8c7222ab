package middlewares

import (
	"net/http"

	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// RequireRole passes the request through only when RequireAuth already put an
// identity on the context and its role is in the allow-list. It composes with
// RequireAuth but never replaces it: without prior authentication it answers
// 401, with the wrong role 403.
func (m *AuthMiddleware) RequireRole(allowed ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing identity context",
				},
			})
			return
		}

		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": gin.H{
				"code":    "forbidden",
				"message": "Access forbidden",
			},
		})
	}
}
