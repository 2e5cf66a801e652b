package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/edulane/enrollment-api/internal/models"
	appErrors "github.com/edulane/enrollment-api/pkg/errors"
	"github.com/edulane/enrollment-api/pkg/response"
)

// RequireAdmin allows only tokens issued to admin accounts. It must run
// after JWT.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok || claims.Kind != models.KindAdmin {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
