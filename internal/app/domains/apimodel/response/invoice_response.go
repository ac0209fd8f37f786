package response

import (
	"time"

	"fbp/billing/internal/app/domains/entity/etinvoice"
	"fbp/billing/internal/app/domains/services/svbilling"
	"fbp/billing/internal/app/domains/services/svinvoice"
)

// InvoiceItemResponse 发票明细行
type InvoiceItemResponse struct {
	ItemName  string `json:"item_name"`
	Qty       int64  `json:"qty"`
	UnitPrice int64  `json:"unit_price"`
	Amount    int64  `json:"amount"`
	Remark    string `json:"remark,omitempty"`
}

// InvoiceResponse 发票详情
type InvoiceResponse struct {
	ID          int64                 `json:"id"`
	VendorID    int64                 `json:"vendor_id"`
	PeriodFrom  string                `json:"period_from"`
	PeriodTo    string                `json:"period_to"`
	TotalAmount int64                 `json:"total_amount"`
	Currency    string                `json:"currency"`
	Status      string                `json:"status"`
	Items       []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// ComputeResponse 计费结果（未落库）
type ComputeResponse struct {
	VendorID int64                 `json:"vendor_id"`
	DateFrom string                `json:"date_from"`
	DateTo   string                `json:"date_to"`
	Items    []InvoiceItemResponse `json:"items"`
	Total    int64                 `json:"total"`
	Warnings []string              `json:"warnings"`
}

// CreateInvoiceResponse 计费落库结果
type CreateInvoiceResponse struct {
	InvoiceID int64    `json:"invoice_id"`
	Total     int64    `json:"total"`
	Warnings  []string `json:"warnings"`
}

// ListInvoicesResponse 发票列表
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Sum      int64             `json:"sum"`
	Periods  []string          `json:"periods"`
}

// FromInvoiceEntity 发票实体转响应对象
func FromInvoiceEntity(inv *etinvoice.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          inv.ID,
		VendorID:    inv.VendorID,
		PeriodFrom:  inv.PeriodFrom.Format("2006-01-02"),
		PeriodTo:    inv.PeriodTo.Format("2006-01-02"),
		TotalAmount: inv.TotalAmount,
		Currency:    inv.Currency,
		Status:      inv.Status,
		CreatedAt:   inv.CreatedAt,
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ItemName:  it.ItemName,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Amount:    it.Amount,
			Remark:    it.Remark,
		})
	}
	return resp
}

// FromComputeResult 计费结果转响应对象
func FromComputeResult(vendorID int64, dateFrom, dateTo string, result *svbilling.InvoiceResult) ComputeResponse {
	items := make([]InvoiceItemResponse, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, InvoiceItemResponse{
			ItemName:  it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Amount:    it.Amount,
			Remark:    it.Remark,
		})
	}
	return ComputeResponse{
		VendorID: vendorID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Items:    items,
		Total:    result.Total,
		Warnings: result.Warnings,
	}
}

// FromListResult 列表查询结果转响应对象
// 列表视图不携带明细行。
func FromListResult(result *svinvoice.ListResult) ListInvoicesResponse {
	invoices := make([]InvoiceResponse, 0, len(result.Invoices))
	for _, inv := range result.Invoices {
		item := FromInvoiceEntity(inv)
		item.Items = nil
		invoices = append(invoices, item)
	}
	return ListInvoicesResponse{
		Invoices: invoices,
		Sum:      result.Sum,
		Periods:  result.Periods,
	}
}
