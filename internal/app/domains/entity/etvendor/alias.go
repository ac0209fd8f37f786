package etvendor

import "time"

// Alias 供应商别名
// 同一供应商在不同数据源文件中出现的原始名称映射，
// (alias, source_type) 唯一；source_type 为 "all" 时对所有数据源生效。
// 由外部后台管理工具维护，计费核心只读。
type Alias struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Alias      string    `gorm:"column:alias;type:varchar(255);not null;uniqueIndex:uk_alias_source,priority:1"`
	SourceType string    `gorm:"column:source_type;type:varchar(32);not null;uniqueIndex:uk_alias_source,priority:2"`
	VendorID   int64     `gorm:"column:vendor_id;not null;index:idx_vendor"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (Alias) TableName() string {
	return "vendor_aliases"
}
