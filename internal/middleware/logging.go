package middleware

import (
	"github.com/BartKempa/api-ecommerce-sub000/internal/logger"
	"github.com/BartKempa/api-ecommerce-sub000/internal/metrics"
	"github.com/BartKempa/api-ecommerce-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logging stamps every request with a request id, logs it in structured
// form on completion, and feeds the HTTP metrics.
func Logging(m *metrics.HTTP) gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := metrics.StartTimer()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)

		c.Next()

		status := c.Writer.Status()
		m.Observe(status)

		userID, _ := utils.GetUserIDFromContext(c.Request.Context())
		logger.FromCtx(c.Request.Context()).Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", timer.Duration()),
			zap.String("remote_ip", c.ClientIP()),
			zap.Uint("user_id", userID),
		)
	}
}
