package etsource

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ShipmentRecord 发货统计记录
// 上传文件列结构不完全固定，已知列落到具体字段，其余保留在 Extra。
type ShipmentRecord struct {
	ID         int64          `gorm:"column:id;primaryKey;autoIncrement"`
	VendorName string         `gorm:"column:vendor_name;type:varchar(255);not null;index:idx_vendor"`
	ShippedAt  time.Time      `gorm:"column:shipped_at;not null;index:idx_shipped_at"`
	TrackingNo string         `gorm:"column:tracking_no;type:varchar(64)"`
	WaybillNo  string         `gorm:"column:waybill_no;type:varchar(64)"`
	ItemCount  int64          `gorm:"column:item_count;not null;default:0"`
	CourierFee int64          `gorm:"column:courier_fee;not null;default:0"`
	Extra      datatypes.JSON `gorm:"column:extra;type:json"`
}

// TableName 指定表名
func (ShipmentRecord) TableName() string { return "shipment_stats" }

func (r *ShipmentRecord) VendorRaw() string     { return r.VendorName }
func (r *ShipmentRecord) OccurredAt() time.Time { return r.ShippedAt }

// Field 按候选列名取去重键值
func (r *ShipmentRecord) Field(name string) (string, bool) {
	switch name {
	case "tracking_no":
		return r.TrackingNo, true
	case "waybill_no":
		return r.WaybillNo, true
	}
	return "", false
}

// PostalIntakeRecord 邮政揽收记录
// Volume 为包裹体积测量值（cm），分段计费的输入。
type PostalIntakeRecord struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SenderName     string    `gorm:"column:sender_name;type:varchar(255);not null;index:idx_sender"`
	AcceptedAt     time.Time `gorm:"column:accepted_at;not null;index:idx_accepted_at"`
	RegistrationNo string    `gorm:"column:registration_no;type:varchar(64)"`
	TrackingNo     string    `gorm:"column:tracking_no;type:varchar(64)"`
	Volume         int64     `gorm:"column:volume;not null;default:0"`
	RemoteFlag     string    `gorm:"column:remote_flag;type:varchar(16)"`
}

// TableName 指定表名
func (PostalIntakeRecord) TableName() string { return "postal_intake" }

func (r *PostalIntakeRecord) VendorRaw() string     { return r.SenderName }
func (r *PostalIntakeRecord) OccurredAt() time.Time { return r.AcceptedAt }

// Field 按候选列名取去重键值
func (r *PostalIntakeRecord) Field(name string) (string, bool) {
	switch name {
	case "registration_no":
		return r.RegistrationNo, true
	case "tracking_no":
		return r.TrackingNo, true
	}
	return "", false
}

// remoteTruthy 偏远地区标记的肯定取值
var remoteTruthy = map[string]bool{
	"y": true, "yes": true, "1": true, "true": true,
}

// IsRemote 是否偏远地区（岛屿/山区）投递
// 上传数据中该列取值混乱，按白名单判定
func (r *PostalIntakeRecord) IsRemote() bool {
	return remoteTruthy[strings.ToLower(strings.TrimSpace(r.RemoteFlag))]
}

// PostalReturnRecord 邮政退货记录
type PostalReturnRecord struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ReceiverName   string    `gorm:"column:receiver_name;type:varchar(255);not null;index:idx_receiver"`
	DeliveredAt    time.Time `gorm:"column:delivered_at;not null;index:idx_delivered_at"`
	RegistrationNo string    `gorm:"column:registration_no;type:varchar(64)"`
	Volume         int64     `gorm:"column:volume;not null;default:0"`
	Qty            int64     `gorm:"column:qty;not null;default:1"`
}

// TableName 指定表名
func (PostalReturnRecord) TableName() string { return "postal_return" }

func (r *PostalReturnRecord) VendorRaw() string     { return r.ReceiverName }
func (r *PostalReturnRecord) OccurredAt() time.Time { return r.DeliveredAt }

// Field 按候选列名取去重键值
func (r *PostalReturnRecord) Field(name string) (string, bool) {
	if name == "registration_no" {
		return r.RegistrationNo, true
	}
	return "", false
}

// WorkLogRecord 人工作业日志
// 多条同类目同单价同备注的记录在出账时合并为一行。
type WorkLogRecord struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VendorName string    `gorm:"column:vendor_name;type:varchar(255);not null;index:idx_vendor"`
	WorkedAt   time.Time `gorm:"column:worked_at;not null;index:idx_worked_at"`
	Category   string    `gorm:"column:category;type:varchar(128);not null"`
	UnitPrice  int64     `gorm:"column:unit_price;not null;default:0"`
	Qty        int64     `gorm:"column:qty;not null;default:0"`
	Amount     int64     `gorm:"column:amount;not null;default:0"`
	Remark     string    `gorm:"column:remark;type:varchar(255)"`
}

// TableName 指定表名
func (WorkLogRecord) TableName() string { return "work_logs" }

func (r *WorkLogRecord) VendorRaw() string     { return r.VendorName }
func (r *WorkLogRecord) OccurredAt() time.Time { return r.WorkedAt }

// Field 作业日志没有自然键列
func (r *WorkLogRecord) Field(name string) (string, bool) {
	return "", false
}

// InboundSlipRecord 入库检验单
type InboundSlipRecord struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VendorName  string    `gorm:"column:vendor_name;type:varchar(255);not null;index:idx_vendor"`
	WorkedAt    time.Time `gorm:"column:worked_at;not null;index:idx_worked_at"`
	ProductCode string    `gorm:"column:product_code;type:varchar(64)"`
	Qty         int64     `gorm:"column:qty;not null;default:0"`
}

// TableName 指定表名
func (InboundSlipRecord) TableName() string { return "inbound_slips" }

func (r *InboundSlipRecord) VendorRaw() string     { return r.VendorName }
func (r *InboundSlipRecord) OccurredAt() time.Time { return r.WorkedAt }

// Field 入库检验单没有自然键列
func (r *InboundSlipRecord) Field(name string) (string, bool) {
	return "", false
}
