package etrate

// 费率项键名常量（flat_rates / flag_rates 的 item_name）
const (
	ItemBasicHandling     = "basic_handling"
	ItemInboundInspection = "inbound_inspection"
	ItemCombinedPack      = "combined_pack"
	ItemRemoteArea        = "remote_area"
	ItemBarcode           = "barcode"
	ItemCushioning        = "cushioning"
	ItemOutboundVideo     = "outbound_video"
	ItemReturnVideo       = "return_video"
	ItemReturnPickup      = "return_pickup"
)

// 兜底默认单价（韩元整数）
// 配置表缺失对应条目时计费按默认值降级执行，而不是中断；
// 未出现在默认表中的项缺失时该费用项缺席并产生警告。
var (
	FlatDefaults = map[string]int64{
		ItemBasicHandling: 900,
	}

	FlagDefaults = map[string]int64{
		ItemOutboundVideo: 200,
		ItemReturnVideo:   400,
		ItemReturnPickup:  1100,
	}

	// DefaultMaterialUnit 包材缺省单价
	DefaultMaterialUnit int64 = 80
)

// 尺寸区间标签常量（shipping_zones.zone_label）
const (
	ZoneXS = "XS"
	ZoneS  = "S"
	ZoneM  = "M"
	ZoneL  = "L"
	ZoneXL = "XL"
)

// RateTier 分段费率（按尺寸区间计费）
// 同一 rate_plan 下按 min_bound 升序排列，每个测量值应命中且仅命中一个区间。
type RateTier struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	RatePlan  string `gorm:"column:rate_plan;type:varchar(32);not null;uniqueIndex:uk_plan_zone,priority:1"`
	ZoneLabel string `gorm:"column:zone_label;type:varchar(32);not null;uniqueIndex:uk_plan_zone,priority:2"`
	MinBound  int64  `gorm:"column:min_bound;not null"`
	MaxBound  int64  `gorm:"column:max_bound;not null"`
	Price     int64  `gorm:"column:price;not null"`
}

// TableName 指定表名
func (RateTier) TableName() string {
	return "shipping_zones"
}

// Contains 测量值是否落在本区间内（闭区间）
func (t *RateTier) Contains(v int64) bool {
	return v >= t.MinBound && v <= t.MaxBound
}

// FlatRate 固定单价（数量 × 单价类费用）
type FlatRate struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ItemName  string `gorm:"column:item_name;type:varchar(64);not null;uniqueIndex:uk_item"`
	UnitPrice int64  `gorm:"column:unit_price;not null"`
}

// TableName 指定表名
func (FlatRate) TableName() string {
	return "flat_rates"
}

// FlagRate 开关类附加费单价
type FlagRate struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ItemName  string `gorm:"column:item_name;type:varchar(64);not null;uniqueIndex:uk_item"`
	UnitPrice int64  `gorm:"column:unit_price;not null"`
}

// TableName 指定表名
func (FlagRate) TableName() string {
	return "flag_rates"
}

// MaterialRate 包材单价（按尺寸码挑选快递袋/纸箱）
type MaterialRate struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	SizeCode  string `gorm:"column:size_code;type:varchar(32);not null;index:idx_size"`
	ItemName  string `gorm:"column:item_name;type:varchar(64);not null"`
	UnitPrice int64  `gorm:"column:unit_price;not null"`
}

// TableName 指定表名
func (MaterialRate) TableName() string {
	return "material_rates"
}
