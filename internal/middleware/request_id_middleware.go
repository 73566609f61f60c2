package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader: заголовок с идентификатором запроса
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey: ключ идентификатора запроса в контексте Gin
	RequestIDKey = "request_id"
)

// RequestID принимает X-Request-ID клиента или генерирует новый UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID возвращает идентификатор текущего запроса
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
