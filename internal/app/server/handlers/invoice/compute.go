package invoice

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fbp/billing/internal/app/domains/apimodel/request"
	"fbp/billing/internal/app/domains/apimodel/response"
	"fbp/billing/internal/app/domains/services/svbilling"
	"fbp/billing/internal/app/pkg/errorx"
	"fbp/billing/internal/app/pkg/ginx"
)

// Compute 计费接口（只计算，不落库）
// POST /api/v1/invoices/compute
func (h *InvoiceHandler) Compute(c *gin.Context) {
	var req request.ComputeInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	from, to, err := req.Period()
	if err != nil {
		ginx.BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	result, err := h.billingService.Compute(c.Request.Context(), req.VendorID, from, to)
	if err != nil {
		h.writeComputeError(c, err)
		return
	}

	ginx.Success(c, response.FromComputeResult(req.VendorID, req.DateFrom, req.DateTo, result))
}

// Create 计费并落库接口
// POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	from, to, err := req.Period()
	if err != nil {
		ginx.BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	opts := svbilling.PersistOptions{
		IdempotencyKey: req.IdempotencyKey,
		UpsertByPeriod: req.UpsertByPeriod,
	}
	invoiceID, result, err := h.billingService.ComputeAndPersist(c.Request.Context(), req.VendorID, from, to, opts)
	if err != nil {
		h.writeComputeError(c, err)
		return
	}

	ginx.Success(c, response.CreateInvoiceResponse{
		InvoiceID: invoiceID,
		Total:     result.Total,
		Warnings:  result.Warnings,
	})
}

// writeComputeError 计费错误映射为 HTTP 响应
func (h *InvoiceHandler) writeComputeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errorx.ErrInvalidPeriod):
		ginx.BadRequest(c, "period from must not be after period to")
	case errors.Is(err, errorx.ErrVendorNotFound):
		ginx.NotFound(c, "vendor not found")
	case errors.Is(err, errorx.ErrInvoiceConfirmed):
		ginx.Conflict(c, "invoice already confirmed, unconfirm it first")
	default:
		h.log.Errorf(c.Request.Context(), "compute invoice failed: %v", err)
		ginx.InternalError(c, err.Error())
	}
}
