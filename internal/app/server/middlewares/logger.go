package middlewares

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fbp/billing/internal/app/pkg/logger"
)

// RequestID 请求追踪中间件
// 透传调用方的 X-Request-ID，缺省时生成 UUID；
// 追踪号写入请求 Context，日志层按 trace_id 字段输出。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), "trace_id", traceID) //nolint:staticcheck
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", traceID)
		c.Next()
	}
}

// Logger 请求日志中间件
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Infof(c.Request.Context(), "%s %s status=%d cost=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
