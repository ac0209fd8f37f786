package svrate

import (
	"context"
	"sort"
	"time"

	"fbp/billing/internal/app/domains/entity/etrate"
	"fbp/billing/internal/app/domains/repo/rprate"
	"fbp/billing/internal/app/pkg/cachex"
	"fbp/billing/internal/app/pkg/logger"
)

// Catalog 费率目录
// 固定单价、开关类附加费单价、分段区间表和包材单价的只读查询入口。
// 配置表缺失条目不报错：有兜底默认值时按默认值降级计费，
// 没有默认值时由调用方记警告并跳过该费用项。
//
// 整表快照缓存在进程内，到期或收到失效信号后重新加载。
type Catalog struct {
	rateRepo rprate.RateRepository
	cache    *cachex.Snapshot
	log      logger.Logger
}

// NewCatalog 创建费率目录
func NewCatalog(rateRepo rprate.RateRepository, ttl time.Duration, log logger.Logger) *Catalog {
	return &Catalog{
		rateRepo: rateRepo,
		cache:    cachex.NewSnapshot(ttl),
		log:      log,
	}
}

// FlatRate 查询固定单价
// 配置缺失时回落到默认表；两者都没有时第二个返回值为 false。
func (c *Catalog) FlatRate(ctx context.Context, itemName string) (int64, bool) {
	rate, err := c.rateRepo.GetFlatRate(ctx, itemName)
	if err == nil && rate != nil {
		return rate.UnitPrice, true
	}
	if err != nil {
		c.log.Warnf(ctx, "flat rate lookup failed for %s: %v", itemName, err)
	}
	if def, ok := etrate.FlatDefaults[itemName]; ok {
		return def, true
	}
	return 0, false
}

// FlagRate 查询开关类附加费单价
// 配置缺失时回落到默认表；两者都没有时第二个返回值为 false。
func (c *Catalog) FlagRate(ctx context.Context, itemName string) (int64, bool) {
	rate, err := c.rateRepo.GetFlagRate(ctx, itemName)
	if err == nil && rate != nil {
		return rate.UnitPrice, true
	}
	if err != nil {
		c.log.Warnf(ctx, "flag rate lookup failed for %s: %v", itemName, err)
	}
	if def, ok := etrate.FlagDefaults[itemName]; ok {
		return def, true
	}
	return 0, false
}

// Tiers 查询费率方案的分段区间，保证按 min_bound 升序返回
func (c *Catalog) Tiers(ctx context.Context, ratePlan string) ([]*etrate.RateTier, error) {
	tiers, err := c.rateRepo.ListTiers(ctx, ratePlan)
	if err != nil {
		return nil, err
	}
	// 仓储层已排序，这里再保证一次排序不变式
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinBound < tiers[j].MinBound
	})
	return tiers, nil
}

// MaterialRates 查询全部包材单价（快照缓存）
func (c *Catalog) MaterialRates(ctx context.Context) ([]*etrate.MaterialRate, error) {
	if v, ok := c.cache.Get(); ok {
		return v.([]*etrate.MaterialRate), nil
	}
	rates, err := c.rateRepo.ListMaterialRates(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(rates)
	return rates, nil
}

// Invalidate 使费率快照失效（配置变更信号触发）
// 同时输出快照命中统计，用于观察失效信号前的缓存效果。
func (c *Catalog) Invalidate() {
	hits, misses := c.cache.Stats()
	c.cache.Invalidate()
	c.log.Infof(context.Background(), "rate snapshot invalidated: hits=%d misses=%d", hits, misses)
}
