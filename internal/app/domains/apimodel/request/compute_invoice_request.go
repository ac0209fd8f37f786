package request

import "time"

// dateLayout 账期日期格式
const dateLayout = "2006-01-02"

// ComputeInvoiceRequest 计费请求
// from/to 为闭区间账期边界，日期格式 YYYY-MM-DD。
type ComputeInvoiceRequest struct {
	VendorID int64  `json:"vendor_id" binding:"required" example:"1"`
	DateFrom string `json:"date_from" binding:"required" example:"2025-06-01"`
	DateTo   string `json:"date_to" binding:"required" example:"2025-06-30"`
}

// Period 解析账期边界
func (r *ComputeInvoiceRequest) Period() (from, to time.Time, err error) {
	from, err = time.Parse(dateLayout, r.DateFrom)
	if err != nil {
		return
	}
	to, err = time.Parse(dateLayout, r.DateTo)
	return
}

// CreateInvoiceRequest 计费并落库请求
type CreateInvoiceRequest struct {
	ComputeInvoiceRequest

	// IdempotencyKey 幂等键，重放时返回既有发票
	IdempotencyKey string `json:"idempotency_key" example:"inv-2025-06-vendor-1"`
	// UpsertByPeriod 为真时替换同供应商同账期的既有草稿
	UpsertByPeriod bool `json:"upsert_by_period" example:"false"`
}
