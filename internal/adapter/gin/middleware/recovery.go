package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-profile-service/pkg/apperrors"
)

// Recovery returns a gin middleware that turns panics into a uniform 500
// envelope instead of tearing down the connection.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "an internal error occurred",
					"code":    apperrors.CodeInternal,
				})
			}
		}()

		c.Next()
	}
}
