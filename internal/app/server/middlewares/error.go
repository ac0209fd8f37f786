package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fbp/billing/internal/app/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// 兜底捕获 panic 和未被处理器消化的 gin 错误。
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(c.Request.Context(), "panic recovered: %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			log.Errorf(c.Request.Context(), "unhandled error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})
		}
	}
}
