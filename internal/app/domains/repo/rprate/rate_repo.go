package rprate

import (
	"context"

	"fbp/billing/internal/app/domains/entity/etrate"
)

// RateRepository 费率仓储接口（只定义，不实现）
// 费率表由外部后台管理工具维护，这里只提供读取；
// 条目缺失返回 nil 而不是错误，兜底策略在目录层处理。
type RateRepository interface {
	// ListTiers 查询费率方案的分段区间，按 min_bound 升序
	ListTiers(ctx context.Context, ratePlan string) ([]*etrate.RateTier, error)

	// GetFlatRate 查询固定单价，缺失时返回 (nil, nil)
	GetFlatRate(ctx context.Context, itemName string) (*etrate.FlatRate, error)

	// GetFlagRate 查询开关类附加费单价，缺失时返回 (nil, nil)
	GetFlagRate(ctx context.Context, itemName string) (*etrate.FlagRate, error)

	// ListMaterialRates 查询全部包材单价
	ListMaterialRates(ctx context.Context) ([]*etrate.MaterialRate, error)
}
