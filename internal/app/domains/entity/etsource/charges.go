package etsource

import "time"

// StorageCharge 周期性保管费记录
// 后台按月为供应商登记，出账时取 is_active 的行合并计费。
type StorageCharge struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID  int64     `gorm:"column:vendor_id;not null;index:idx_vendor"`
	RateID    int64     `gorm:"column:rate_id"`
	ItemName  string    `gorm:"column:item_name;type:varchar(128);not null"`
	Qty       int64     `gorm:"column:qty;not null;default:1"`
	UnitPrice int64     `gorm:"column:unit_price;not null"`
	Amount    int64     `gorm:"column:amount;not null"`
	Period    string    `gorm:"column:period;type:varchar(16);index:idx_period"` // YYYY-MM
	Remark    string    `gorm:"column:remark;type:varchar(255)"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (StorageCharge) TableName() string { return "vendor_storage" }

// VendorCharge 供应商临时性附加费用记录
type VendorCharge struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID   int64     `gorm:"column:vendor_id;not null;index:idx_vendor"`
	ItemName   string    `gorm:"column:item_name;type:varchar(128);not null"`
	Qty        int64     `gorm:"column:qty;not null;default:1"`
	UnitPrice  int64     `gorm:"column:unit_price;not null"`
	Amount     int64     `gorm:"column:amount;not null"`
	Remark     string    `gorm:"column:remark;type:varchar(255)"`
	ChargeType string    `gorm:"column:charge_type;type:varchar(32)"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (VendorCharge) TableName() string { return "vendor_charges" }
