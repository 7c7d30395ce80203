package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waoafrica/backoffice/pkg/logctx"
)

// RequestLoggerMiddleware attaches a request-scoped logger to gin.Context and
// the request context, enriched with trace_id and, when auth already ran,
// user_id. The trace ID is echoed back in X-Request-ID.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLogger := base
		if traceID := c.GetString("traceID"); traceID != "" {
			reqLogger = reqLogger.With("trace_id", traceID)
			c.Writer.Header().Set("X-Request-ID", traceID)
		}
		if userID := c.GetString("user_id"); userID != "" {
			reqLogger = reqLogger.With("user_id", userID)
		}

		c.Set("logger", reqLogger)
		c.Request = c.Request.WithContext(logctx.WithLogger(c.Request.Context(), reqLogger))

		c.Next()
	}
}
