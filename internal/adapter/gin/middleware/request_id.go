package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"user-profile-service/pkg/logger"
)

// RequestIDHeader is the response header carrying the correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a fresh request id to every request, stores it in the
// request context for log correlation and echoes it back in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}
