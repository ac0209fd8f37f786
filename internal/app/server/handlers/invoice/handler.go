package invoice

import (
	"fbp/billing/internal/app/domains/services/svbilling"
	"fbp/billing/internal/app/domains/services/svinvoice"
	"fbp/billing/internal/app/pkg/logger"
)

// InvoiceHandler 发票 HTTP 处理器
type InvoiceHandler struct {
	billingService *svbilling.BillingService
	invoiceService *svinvoice.InvoiceService
	log            logger.Logger
}

// NewInvoiceHandler 创建发票处理器实例
func NewInvoiceHandler(billingService *svbilling.BillingService, invoiceService *svinvoice.InvoiceService, log logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		billingService: billingService,
		invoiceService: invoiceService,
		log:            log,
	}
}
