package svalias

import (
	"context"
	"strings"
	"time"

	"fbp/billing/internal/app/domains/entity/etsource"
	"fbp/billing/internal/app/domains/repo/rpvendor"
	"fbp/billing/internal/app/pkg/cachex"
	"fbp/billing/internal/app/pkg/errorx"
	"fbp/billing/internal/app/pkg/logger"
)

// Resolver 供应商别名解析器
// 把数据源文件中出现的原始供应商字符串解析为规范供应商身份。
// 解析按 (原始串, 数据源类型) 精确匹配（仅做首尾去空格），同一原始串
// 在不同数据源可以映射到不同供应商；供应商规范名称对所有数据源
// 都是自身的隐式别名。
//
// 别名表整表快照缓存在进程内，到期或收到失效信号后重新加载。
type Resolver struct {
	vendorRepo rpvendor.VendorRepository
	cache      *cachex.Snapshot
	log        logger.Logger
}

// NewResolver 创建别名解析器
func NewResolver(vendorRepo rpvendor.VendorRepository, ttl time.Duration, log logger.Logger) *Resolver {
	return &Resolver{
		vendorRepo: vendorRepo,
		cache:      cachex.NewSnapshot(ttl),
		log:        log,
	}
}

// aliasKey 正向索引键
type aliasKey struct {
	alias      string
	sourceType etsource.SourceType
}

// reverseKey 反向索引键
type reverseKey struct {
	vendorID   int64
	sourceType etsource.SourceType
}

// snapshot 别名表快照
type snapshot struct {
	forward    map[aliasKey]int64      // (别名, 数据源) → 供应商ID
	reverse    map[reverseKey][]string // (供应商ID, 数据源) → 别名列表
	codeIndex  map[string]int64        // 规范名称 → 供应商ID
	vendorCode map[int64]string        // 供应商ID → 规范名称
}

// Resolve 解析原始供应商字符串
// 未命中任何映射返回 errorx.ErrAliasNotMapped。
func (r *Resolver) Resolve(ctx context.Context, raw string, sourceType etsource.SourceType) (int64, error) {
	snap, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	name := strings.TrimSpace(raw)

	// 规范名称是自身的隐式别名，对所有数据源生效
	if id, ok := snap.codeIndex[name]; ok {
		return id, nil
	}
	if id, ok := snap.forward[aliasKey{alias: name, sourceType: sourceType}]; ok {
		return id, nil
	}
	if id, ok := snap.forward[aliasKey{alias: name, sourceType: etsource.SourceAll}]; ok {
		return id, nil
	}
	return 0, errorx.ErrAliasNotMapped
}

// AliasSet 供应商在某数据源下的完整名称集合（反向查询）
// 结果为规范名称 + 该数据源专属别名 + 通配别名，去重且保持稳定顺序，
// 聚合器用它做原始记录的供应商过滤。
func (r *Resolver) AliasSet(ctx context.Context, vendorID int64, sourceType etsource.SourceType) ([]string, error) {
	snap, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	code, ok := snap.vendorCode[vendorID]
	if !ok {
		return nil, errorx.ErrVendorNotFound
	}

	names := make([]string, 0, 4)
	seen := map[string]bool{}
	appendName := func(n string) {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			return
		}
		seen[n] = true
		names = append(names, n)
	}

	appendName(code)
	for _, a := range snap.reverse[reverseKey{vendorID: vendorID, sourceType: sourceType}] {
		appendName(a)
	}
	for _, a := range snap.reverse[reverseKey{vendorID: vendorID, sourceType: etsource.SourceAll}] {
		appendName(a)
	}
	return names, nil
}

// Invalidate 使别名快照失效（配置变更信号触发）
// 同时输出快照命中统计，用于观察失效信号前的缓存效果。
func (r *Resolver) Invalidate() {
	hits, misses := r.cache.Stats()
	r.cache.Invalidate()
	r.log.Infof(context.Background(), "alias snapshot invalidated: hits=%d misses=%d", hits, misses)
}

// load 读取快照，未命中时整表重建
func (r *Resolver) load(ctx context.Context) (*snapshot, error) {
	if v, ok := r.cache.Get(); ok {
		return v.(*snapshot), nil
	}

	vendors, err := r.vendorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	aliases, err := r.vendorRepo.ListAliases(ctx)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		forward:    make(map[aliasKey]int64, len(aliases)),
		reverse:    make(map[reverseKey][]string, len(aliases)),
		codeIndex:  make(map[string]int64, len(vendors)),
		vendorCode: make(map[int64]string, len(vendors)),
	}
	for _, v := range vendors {
		code := strings.TrimSpace(v.Code)
		snap.codeIndex[code] = v.ID
		snap.vendorCode[v.ID] = code
	}
	for _, a := range aliases {
		name := strings.TrimSpace(a.Alias)
		if name == "" {
			continue
		}
		st := etsource.SourceType(a.SourceType)
		snap.forward[aliasKey{alias: name, sourceType: st}] = a.VendorID
		rk := reverseKey{vendorID: a.VendorID, sourceType: st}
		snap.reverse[rk] = append(snap.reverse[rk], name)
	}

	r.cache.Set(snap)
	r.log.Debugf(ctx, "alias snapshot reloaded: %d vendors, %d aliases", len(vendors), len(aliases))
	return snap, nil
}
