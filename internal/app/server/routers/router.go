package routers

import (
	"github.com/gin-gonic/gin"

	"fbp/billing/internal/app/pkg/logger"
	"fbp/billing/internal/app/server/handlers/invoice"
	"fbp/billing/internal/app/server/handlers/vendor"
	"fbp/billing/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	invoiceHandler *invoice.InvoiceHandler,
	vendorHandler *vendor.VendorHandler,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.RequestID())
	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "billing",
			"message": "Service is running",
		})
	})

	v1 := r.Group("/api/v1")
	{
		invoices := v1.Group("/invoices")
		{
			invoices.POST("/compute", invoiceHandler.Compute)
			invoices.POST("", invoiceHandler.Create)
			invoices.GET("", invoiceHandler.List)
			invoices.GET("/:id", invoiceHandler.Get)
			invoices.POST("/:id/confirm", invoiceHandler.Confirm)
			invoices.POST("/:id/unconfirm", invoiceHandler.Unconfirm)
			invoices.DELETE("/:id", invoiceHandler.Delete)
		}

		vendors := v1.Group("/vendors")
		{
			vendors.GET("", vendorHandler.List)
			vendors.GET("/:id", vendorHandler.Get)
		}
	}

	return r
}
