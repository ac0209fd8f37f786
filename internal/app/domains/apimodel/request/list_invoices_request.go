package request

import "fbp/billing/internal/app/domains/repo/rpinvoice"

// ListInvoicesRequest 发票列表查询参数
type ListInvoicesRequest struct {
	Period   string `form:"period" example:"2025-06"`
	VendorID int64  `form:"vendor_id" example:"1"`
	Status   string `form:"status" binding:"omitempty,oneof=draft confirmed" example:"draft"`
}

// ToFilter 转换为仓储过滤条件
func (r *ListInvoicesRequest) ToFilter() rpinvoice.ListFilter {
	return rpinvoice.ListFilter{
		Period:   r.Period,
		VendorID: r.VendorID,
		Status:   r.Status,
	}
}
