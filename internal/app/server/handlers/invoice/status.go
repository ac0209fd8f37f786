package invoice

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fbp/billing/internal/app/pkg/errorx"
	"fbp/billing/internal/app/pkg/ginx"
)

// Confirm 确认发票
// POST /api/v1/invoices/:id/confirm
func (h *InvoiceHandler) Confirm(c *gin.Context) {
	invoiceID, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.Confirm(c.Request.Context(), invoiceID); err != nil {
		h.writeStatusError(c, err)
		return
	}
	ginx.Success(c, gin.H{"invoice_id": invoiceID, "status": "confirmed"})
}

// Unconfirm 撤销确认
// POST /api/v1/invoices/:id/unconfirm
func (h *InvoiceHandler) Unconfirm(c *gin.Context) {
	invoiceID, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.Unconfirm(c.Request.Context(), invoiceID); err != nil {
		h.writeStatusError(c, err)
		return
	}
	ginx.Success(c, gin.H{"invoice_id": invoiceID, "status": "draft"})
}

// Delete 删除发票
// DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.Delete(c.Request.Context(), invoiceID); err != nil {
		h.writeStatusError(c, err)
		return
	}
	ginx.Success(c, gin.H{"invoice_id": invoiceID, "deleted": true})
}

// writeStatusError 状态迁移/删除错误映射为 HTTP 响应
func (h *InvoiceHandler) writeStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errorx.ErrInvoiceNotFound):
		ginx.NotFound(c, "invoice not found")
	case errors.Is(err, errorx.ErrInvalidTransition):
		ginx.Conflict(c, "invalid status transition")
	default:
		h.log.Errorf(c.Request.Context(), "invoice status operation failed: %v", err)
		ginx.InternalError(c, err.Error())
	}
}
