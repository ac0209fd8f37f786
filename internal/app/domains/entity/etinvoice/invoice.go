package etinvoice

import (
	"time"

	"fbp/billing/internal/app/pkg/errorx"
)

// 发票状态常量
// 状态机只有两个状态：draft ⇄ confirmed，均由外部显式操作触发，
// 两个方向都可逆，没有终态。
const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
)

// Invoice 发票实体（表头 + 明细行）
type Invoice struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	VendorID    int64     `gorm:"column:vendor_id;not null;index:idx_vendor_period,priority:1"`
	PeriodFrom  time.Time `gorm:"column:period_from;type:date;not null;index:idx_vendor_period,priority:2"`
	PeriodTo    time.Time `gorm:"column:period_to;type:date;not null"`
	TotalAmount int64     `gorm:"column:total_amount;not null"`
	Currency    string    `gorm:"column:currency;type:varchar(8);not null;default:'KRW'"`
	Status      string    `gorm:"column:status;type:varchar(16);not null;default:'draft'"`

	// IdempotencyKey 调用方提供的幂等键，为空表示每次持久化都新建发票
	IdempotencyKey *string `gorm:"column:idempotency_key;type:varchar(128);uniqueIndex:uk_idem"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID"`
}

// TableName 指定表名
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem 发票明细行
// Position 保持计费流水线生成的顺序
type InvoiceItem struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	InvoiceID int64  `gorm:"column:invoice_id;not null;index:idx_invoice"`
	ItemName  string `gorm:"column:item_name;type:varchar(128);not null"`
	Qty       int64  `gorm:"column:qty;not null"`
	UnitPrice int64  `gorm:"column:unit_price;not null"`
	Amount    int64  `gorm:"column:amount;not null"`
	Remark    string `gorm:"column:remark;type:varchar(255)"`
	Position  int    `gorm:"column:position;not null;default:0"`
}

// TableName 指定表名
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// LineItem 计费过程中的明细行（计算期临时对象，写入发票后丢弃）
type LineItem struct {
	Name      string `json:"name"`
	Qty       int64  `json:"qty"`
	UnitPrice int64  `json:"unit_price"`
	Amount    int64  `json:"amount"`
	Remark    string `json:"remark,omitempty"`
}

// NewLineItem 创建明细行，金额 = 数量 × 单价（整数韩元运算）
func NewLineItem(name string, qty, unitPrice int64) LineItem {
	return LineItem{
		Name:      name,
		Qty:       qty,
		UnitPrice: unitPrice,
		Amount:    qty * unitPrice,
	}
}

// TotalOf 明细行金额合计
func TotalOf(items []LineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Amount
	}
	return total
}

// NewInvoice 由明细行组装发票（工厂方法）
// 总额恒等于明细行金额之和，创建时状态固定为 draft。
func NewInvoice(id, vendorID int64, from, to time.Time, items []LineItem) *Invoice {
	now := time.Now()
	inv := &Invoice{
		ID:          id,
		VendorID:    vendorID,
		PeriodFrom:  from,
		PeriodTo:    to,
		TotalAmount: TotalOf(items),
		Currency:    "KRW",
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, it := range items {
		inv.Items = append(inv.Items, InvoiceItem{
			InvoiceID: id,
			ItemName:  it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Amount:    it.Amount,
			Remark:    it.Remark,
			Position:  i,
		})
	}
	return inv
}

// Confirm 确认发票（领域行为，draft → confirmed）
func (inv *Invoice) Confirm() error {
	if inv.Status != StatusDraft {
		return errorx.ErrInvalidTransition
	}
	inv.Status = StatusConfirmed
	inv.UpdatedAt = time.Now()
	return nil
}

// Unconfirm 撤销确认（领域行为，confirmed → draft）
func (inv *Invoice) Unconfirm() error {
	if inv.Status != StatusConfirmed {
		return errorx.ErrInvalidTransition
	}
	inv.Status = StatusDraft
	inv.UpdatedAt = time.Now()
	return nil
}
