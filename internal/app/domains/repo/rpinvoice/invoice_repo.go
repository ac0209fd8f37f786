package rpinvoice

import (
	"context"
	"time"

	"fbp/billing/internal/app/domains/entity/etinvoice"
)

// ListFilter 发票列表过滤条件
type ListFilter struct {
	Period   string // YYYY-MM，按 period_from 所在月份过滤
	VendorID int64
	Status   string
}

// InvoiceRepository 发票仓储接口（只定义，不实现）
// 写入以单个事务为原子边界：表头和全部明细行要么同时落库，要么全不落库。
type InvoiceRepository interface {
	// Create 创建发票（表头 + 明细行，单事务）
	Create(ctx context.Context, inv *etinvoice.Invoice) error

	// ReplaceDraft 用新内容替换既有草稿发票（保留发票ID，单事务）
	ReplaceDraft(ctx context.Context, existingID int64, inv *etinvoice.Invoice) error

	// GetByID 根据ID查询发票（含明细行）
	GetByID(ctx context.Context, invoiceID int64) (*etinvoice.Invoice, error)

	// GetByIdempotencyKey 根据幂等键查询发票，未命中返回 (nil, nil)
	GetByIdempotencyKey(ctx context.Context, key string) (*etinvoice.Invoice, error)

	// FindByPeriod 查询指定供应商和账期的最近一张发票，未命中返回 (nil, nil)
	FindByPeriod(ctx context.Context, vendorID int64, from, to time.Time) (*etinvoice.Invoice, error)

	// List 条件查询发票列表，返回列表与总额合计
	List(ctx context.Context, filter ListFilter) ([]*etinvoice.Invoice, int64, error)

	// ListPeriods 查询存在发票的账期月份列表（降序）
	ListPeriods(ctx context.Context) ([]string, error)

	// UpdateStatus 状态迁移（带前置状态守卫）
	UpdateStatus(ctx context.Context, invoiceID int64, fromStatus, toStatus string) error

	// Delete 删除发票（表头 + 明细行，单事务）
	Delete(ctx context.Context, invoiceID int64) error
}
