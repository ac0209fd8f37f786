package svbilling

import (
	"fbp/billing/internal/app/domains/entity/etrate"
)

// ZoneCount 尺寸区间命中统计
type ZoneCount struct {
	Label     string
	Count     int64
	UnitPrice int64
}

// bucketByZone 把测量值按升序区间分桶
// 区间为闭区间 [MinBound, MaxBound]，按 MinBound 升序依次匹配；
// 已命中的测量值从剩余集合中移除，即使配置区间重叠也不会重复计数。
// 未命中任何区间的测量值静默丢弃（不计费）。
// 返回值保持区间顺序，只包含命中数大于零的区间。
func bucketByZone(volumes []int64, tiers []*etrate.RateTier) []ZoneCount {
	if len(volumes) == 0 || len(tiers) == 0 {
		return nil
	}

	used := make([]bool, len(volumes))
	var out []ZoneCount
	for _, tier := range tiers {
		var count int64
		for i, v := range volumes {
			if used[i] || !tier.Contains(v) {
				continue
			}
			used[i] = true
			count++
		}
		if count > 0 {
			out = append(out, ZoneCount{
				Label:     tier.ZoneLabel,
				Count:     count,
				UnitPrice: tier.Price,
			})
		}
	}
	return out
}
