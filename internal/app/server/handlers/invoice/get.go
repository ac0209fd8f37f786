package invoice

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"fbp/billing/internal/app/domains/apimodel/request"
	"fbp/billing/internal/app/domains/apimodel/response"
	"fbp/billing/internal/app/pkg/errorx"
	"fbp/billing/internal/app/pkg/ginx"
)

// Get 获取发票详情（含明细行）
// GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := h.pathID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.Get(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, errorx.ErrInvoiceNotFound) {
			ginx.NotFound(c, "invoice not found")
			return
		}
		h.log.Errorf(c.Request.Context(), "get invoice failed: %v", err)
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromInvoiceEntity(inv))
}

// List 发票列表查询
// GET /api/v1/invoices?period=2025-06&vendor_id=1&status=draft
func (h *InvoiceHandler) List(c *gin.Context) {
	var req request.ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.log.Errorf(c.Request.Context(), "list invoices failed: %v", err)
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromListResult(result))
}

// pathID 解析路径参数中的发票 ID
func (h *InvoiceHandler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ginx.BadRequest(c, "invalid invoice id")
		return 0, false
	}
	return id, true
}
