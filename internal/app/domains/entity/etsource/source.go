package etsource

import "time"

// SourceType 原始业务记录的数据源类型
// 每种数据源有独立的表结构和独立的别名命名空间。
type SourceType string

const (
	SourceShipment     SourceType = "shipment_stats" // 发货统计
	SourcePostalIntake SourceType = "postal_intake"  // 邮政揽收
	SourcePostalReturn SourceType = "postal_return"  // 邮政退货
	SourceWorkLog      SourceType = "work_log"       // 人工作业日志
	SourceInboundSlip  SourceType = "inbound_slip"   // 入库检验单

	// SourceAll 别名通配：对所有数据源生效
	SourceAll SourceType = "all"
)

// Record 原始记录的统一访问接口
// 聚合器按该接口做日期过滤与去重，各数据源的具体结构体实现它。
type Record interface {
	// VendorRaw 记录中出现的原始供应商名称
	VendorRaw() string
	// OccurredAt 记录时间戳
	OccurredAt() time.Time
	// Field 按自然键候选列名取值，列不在该数据源结构中时返回 false
	Field(name string) (string, bool)
}

// Schema 数据源结构描述
// 在构造聚合器时一次性解析，不在每次调用时重新探测：
// TimeField 为必需的时间戳列，KeyFields 为去重自然键候选列（按优先级排序）。
type Schema struct {
	Source    SourceType
	TimeField string
	KeyFields []string
}

// schemas 各数据源的结构描述注册表
var schemas = map[SourceType]Schema{
	SourceShipment: {
		Source:    SourceShipment,
		TimeField: "shipped_at",
		KeyFields: []string{"tracking_no", "waybill_no"},
	},
	SourcePostalIntake: {
		Source:    SourcePostalIntake,
		TimeField: "accepted_at",
		KeyFields: []string{"registration_no", "tracking_no"},
	},
	SourcePostalReturn: {
		Source:    SourcePostalReturn,
		TimeField: "delivered_at",
		KeyFields: []string{"registration_no"},
	},
	SourceWorkLog: {
		Source:    SourceWorkLog,
		TimeField: "worked_at",
		// 作业日志没有自然键，同一天同类目可以有多条，不去重
		KeyFields: nil,
	},
	SourceInboundSlip: {
		Source:    SourceInboundSlip,
		TimeField: "worked_at",
		KeyFields: nil,
	},
}

// SchemaFor 查询数据源的结构描述
func SchemaFor(st SourceType) (Schema, bool) {
	s, ok := schemas[st]
	return s, ok
}
