package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/waoafrica/backoffice/pkg/logctx"
	"github.com/waoafrica/backoffice/pkg/tool"
)

// TraceMiddleware assigns every request a trace ID. The client's X-Request-ID
// wins when present so upstream proxies can correlate; otherwise a fresh UUID
// is minted. The ID lives in both gin.Context (key "traceID") and the
// request's context.Context for the logging helpers.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-ID")
		if traceID == "" {
			traceID = tool.GenerateUUIDV7()
		}

		c.Set("traceID", traceID)
		c.Request = c.Request.WithContext(logctx.WithTraceID(c.Request.Context(), traceID))

		c.Next()
	}
}
