package etvendor

import (
	"strings"
	"time"
)

// 费率方案常量
const (
	RatePlanStandard = "STD"
	RatePlanA        = "A"
)

// Vendor 供应商实体
// 由外部后台管理工具创建和维护，计费核心只读。
// Code 为供应商在各数据源中的规范名称，同时是自身的隐式别名。
type Vendor struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Code     string `gorm:"column:code;type:varchar(128);uniqueIndex:uk_code;not null"`
	Name     string `gorm:"column:name;type:varchar(255)"`
	RatePlan string `gorm:"column:rate_plan;type:varchar(32);not null;default:'STD'"`

	// 服务开关，对应按开关计费的附加项
	BarcodeF  bool `gorm:"column:barcode_f;not null;default:false"`  // 条码贴标
	CushionF  bool `gorm:"column:cushion_f;not null;default:false"`  // 缓冲填充
	PPBagF    bool `gorm:"column:pp_bag_f;not null;default:false"`   // PP 袋
	VideoOutF bool `gorm:"column:video_out_f;not null;default:false"` // 出库录像
	VideoRetF bool `gorm:"column:video_ret_f;not null;default:false"` // 退货录像
	MailerF   bool `gorm:"column:mailer_f;not null;default:false"`    // 快递袋包装
	CustBoxF  bool `gorm:"column:cust_box_f;not null;default:false"`  // 自备纸箱

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Vendor) TableName() string {
	return "vendors"
}

// NormalizedRatePlan 返回归一化后的费率方案
// 空值和历史写法（std/standard）一律按标准方案处理
func (v *Vendor) NormalizedRatePlan() string {
	plan := strings.ToUpper(strings.TrimSpace(v.RatePlan))
	switch plan {
	case "", "STD", "STANDARD":
		return RatePlanStandard
	default:
		return plan
	}
}
