package svbilling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fbp/billing/internal/app/domains/entity/etinvoice"
	"fbp/billing/internal/app/domains/entity/etrate"
	"fbp/billing/internal/app/domains/entity/etsource"
	"fbp/billing/internal/app/domains/entity/etvendor"
	"fbp/billing/internal/app/domains/repo/rpvendor"
	"fbp/billing/internal/app/domains/services/svrate"
	"fbp/billing/internal/app/domains/services/svsource"
	"fbp/billing/internal/app/pkg/errorx"
	"fbp/billing/internal/app/pkg/logger"
)

// 明细行名称常量
const (
	LineBasicHandling     = "Basic Handling"
	LineInboundInspection = "Inbound Inspection"
	LineCombinedPack      = "Combined Packing"
	LineRemoteArea        = "Remote Area Surcharge"
	LineBarcode           = "Barcode Labeling"
	LineCushioning        = "Cushioning"
	LinePPBag             = "PP Bag"
	LineOutboundVideo     = "Outbound Video"
	LineReturnPickup      = "Return Pickup"
	LineReturnVideo       = "Return Video"
)

// MaterialPPBagMedium PP 袋计价引用的包材条目名
const MaterialPPBagMedium = "PP Bag (Medium)"

// FeeBuilder 费用明细构建器
// 按固定顺序执行各费用例程，后置例程可以读取前置例程产出行的数量
// （开关类附加费引用基础行数量）。单个费用例程失败不中断整体计算，
// 记入警告列表后继续执行。
type FeeBuilder struct {
	vendorRepo rpvendor.VendorRepository
	sources    *svsource.Aggregator
	rates      *svrate.Catalog
	log        logger.Logger
}

// NewFeeBuilder 创建费用明细构建器
func NewFeeBuilder(vendorRepo rpvendor.VendorRepository, sources *svsource.Aggregator, rates *svrate.Catalog, log logger.Logger) *FeeBuilder {
	return &FeeBuilder{
		vendorRepo: vendorRepo,
		sources:    sources,
		rates:      rates,
		log:        log,
	}
}

// buildState 单次计费的中间状态
type buildState struct {
	vendor *etvendor.Vendor
	from   time.Time
	to     time.Time

	items []etinvoice.LineItem
	warns errorx.Warnings

	// 发货统计和揽收记录在多个例程间复用，只拉取一次
	shipments []*etsource.ShipmentRecord
	intake    []*etsource.PostalIntakeRecord

	// 揽收分桶结果，包材例程按区间挑选包装袋/纸箱
	zoneCounts []ZoneCount
}

// lineQty 按行名查找已产出行的数量，未找到返回 0
func (s *buildState) lineQty(name string) int64 {
	for _, it := range s.items {
		if it.Name == name {
			return it.Qty
		}
	}
	return 0
}

func (s *buildState) append(item etinvoice.LineItem) {
	s.items = append(s.items, item)
}

// Build 计算供应商在账期 [from, to] 内的全部费用明细
// 返回明细行、警告列表。供应商不存在返回错误；
// 费用项级别的失败转为警告，不阻断其余费用项。
func (b *FeeBuilder) Build(ctx context.Context, vendorID int64, from, to time.Time) ([]etinvoice.LineItem, []string, error) {
	vendor, err := b.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, nil, err
	}

	st := &buildState{vendor: vendor, from: from, to: to}

	b.loadSources(ctx, st)

	// 固定顺序：开关类附加费依赖基础行数量，包材依赖区间分桶结果
	b.addBasicHandling(ctx, st)
	b.addCourierFee(ctx, st)
	b.addInboundInspection(ctx, st)
	b.addCombinedPack(ctx, st)
	b.addRemoteArea(ctx, st)
	b.addWorkLogCharges(ctx, st)
	b.addFlagFees(ctx, st)
	b.addReturnFees(ctx, st)
	b.addPackagingMaterial(ctx, st)
	b.addStorageCharges(ctx, st)
	b.addVendorCharges(ctx, st)

	b.log.Infof(ctx, "fee build done: vendor=%d items=%d warnings=%d",
		vendorID, len(st.items), len(st.warns.List()))
	return st.items, st.warns.List(), nil
}

// loadSources 预拉取多个例程复用的数据源
func (b *FeeBuilder) loadSources(ctx context.Context, st *buildState) {
	shipments, err := b.sources.FetchShipments(ctx, st.vendor.ID, st.from, st.to)
	if err != nil {
		st.warns.Addf("shipment stats unavailable: %v", err)
	} else {
		st.shipments = shipments
	}

	intake, err := b.sources.FetchPostalIntake(ctx, st.vendor.ID, st.from, st.to)
	if err != nil {
		st.warns.Addf("postal intake unavailable: %v", err)
	} else {
		st.intake = intake
	}
}

// addBasicHandling 1. 基本出库费：去重后的发货行数 × 单价
func (b *FeeBuilder) addBasicHandling(ctx context.Context, st *buildState) {
	qty := int64(len(st.shipments))
	if qty == 0 {
		return
	}
	unit, ok := b.rates.FlatRate(ctx, etrate.ItemBasicHandling)
	if !ok {
		st.warns.Addf("%v, basic handling skipped", errorx.NewConfigError(etrate.ItemBasicHandling))
		return
	}
	st.append(etinvoice.NewLineItem(LineBasicHandling, qty, unit))
}

// addCourierFee 2. 区间别快递费：揽收包裹体积按费率方案分桶
// 分桶结果保留在状态里，包材例程复用。
func (b *FeeBuilder) addCourierFee(ctx context.Context, st *buildState) {
	if len(st.intake) == 0 {
		return
	}
	tiers, err := b.rates.Tiers(ctx, st.vendor.NormalizedRatePlan())
	if err != nil {
		st.warns.Addf("shipping zones for plan %q unavailable: %v", st.vendor.NormalizedRatePlan(), err)
		return
	}

	volumes := make([]int64, len(st.intake))
	for i, r := range st.intake {
		volumes[i] = r.Volume
	}
	st.zoneCounts = bucketByZone(volumes, tiers)
	for _, zc := range st.zoneCounts {
		st.append(etinvoice.NewLineItem(fmt.Sprintf("Courier Fee (%s)", zc.Label), zc.Count, zc.UnitPrice))
	}
}

// addInboundInspection 3. 入库检验费：检验单数量合计 × 单价
func (b *FeeBuilder) addInboundInspection(ctx context.Context, st *buildState) {
	slips, err := b.sources.FetchInboundSlips(ctx, st.vendor.ID, st.from, st.to)
	if err != nil {
		st.warns.Addf("inbound slips unavailable: %v", err)
		return
	}
	var qty int64
	for _, s := range slips {
		qty += s.Qty
	}
	if qty == 0 {
		return
	}
	unit, ok := b.rates.FlagRate(ctx, etrate.ItemInboundInspection)
	if !ok {
		st.warns.Addf("%v, inbound inspection skipped", errorx.NewConfigError(etrate.ItemInboundInspection))
		return
	}
	st.append(etinvoice.NewLineItem(LineInboundInspection, qty, unit))
}

// addCombinedPack 4. 合并包装附加费：每行超出 2 件的部分累加
func (b *FeeBuilder) addCombinedPack(ctx context.Context, st *buildState) {
	var qty int64
	for _, r := range st.shipments {
		if over := r.ItemCount - 2; over > 0 {
			qty += over
		}
	}
	if qty == 0 {
		return
	}
	unit, ok := b.rates.FlagRate(ctx, etrate.ItemCombinedPack)
	if !ok {
		st.warns.Addf("%v, combined packing skipped", errorx.NewConfigError(etrate.ItemCombinedPack))
		return
	}
	st.append(etinvoice.NewLineItem(LineCombinedPack, qty, unit))
}

// addRemoteArea 5. 偏远地区附加费：揽收记录中偏远标记为真的件数
func (b *FeeBuilder) addRemoteArea(ctx context.Context, st *buildState) {
	var qty int64
	for _, r := range st.intake {
		if r.IsRemote() {
			qty++
		}
	}
	if qty == 0 {
		return
	}
	unit, ok := b.rates.FlagRate(ctx, etrate.ItemRemoteArea)
	if !ok {
		st.warns.Addf("%v, remote area surcharge skipped", errorx.NewConfigError(etrate.ItemRemoteArea))
		return
	}
	st.append(etinvoice.NewLineItem(LineRemoteArea, qty, unit))
}

// workLogGroup 作业日志合并键
type workLogGroup struct {
	category  string
	unitPrice int64
	remark    string
}

// addWorkLogCharges 6. 人工作业费：按（类目，单价，备注）合并为一行
// 金额取日志合计列之和而不是数量 × 单价，保留登记时的手工调整。
func (b *FeeBuilder) addWorkLogCharges(ctx context.Context, st *buildState) {
	logs, err := b.sources.FetchWorkLogs(ctx, st.vendor.ID, st.from, st.to)
	if err != nil {
		st.warns.Addf("work logs unavailable: %v", err)
		return
	}
	groupCharges(st, logs, func(wl *etsource.WorkLogRecord) (string, int64, int64, int64, string) {
		return wl.Category, wl.Qty, wl.UnitPrice, wl.Amount, wl.Remark
	})
}

// addFlagFees 7. 开关类附加费
// 仅当供应商开关为真且引用行数量大于零时产出，
// 数量继承引用行的数量。
func (b *FeeBuilder) addFlagFees(ctx context.Context, st *buildState) {
	b.addFlagFee(ctx, st, st.vendor.BarcodeF, LineBarcode, LineInboundInspection, func() (int64, bool) {
		return b.rates.FlagRate(ctx, etrate.ItemBarcode)
	})
	b.addFlagFee(ctx, st, st.vendor.CushionF, LineCushioning, LineBasicHandling, func() (int64, bool) {
		return b.rates.FlagRate(ctx, etrate.ItemCushioning)
	})
	b.addFlagFee(ctx, st, st.vendor.PPBagF, LinePPBag, LineInboundInspection, func() (int64, bool) {
		return b.materialUnit(ctx, MaterialPPBagMedium)
	})
	b.addFlagFee(ctx, st, st.vendor.VideoOutF, LineOutboundVideo, LineBasicHandling, func() (int64, bool) {
		return b.rates.FlagRate(ctx, etrate.ItemOutboundVideo)
	})
}

func (b *FeeBuilder) addFlagFee(ctx context.Context, st *buildState, enabled bool, name, qtySource string, unitFn func() (int64, bool)) {
	if !enabled {
		return
	}
	qty := st.lineQty(qtySource)
	if qty == 0 {
		return
	}
	unit, ok := unitFn()
	if !ok {
		st.warns.Addf("%v, skipped", errorx.NewConfigError(name))
		return
	}
	st.append(etinvoice.NewLineItem(name, qty, unit))
}

// materialUnit 按条目名查包材单价，查不到回落到缺省包材单价
func (b *FeeBuilder) materialUnit(ctx context.Context, itemName string) (int64, bool) {
	rates, err := b.rates.MaterialRates(ctx)
	if err == nil {
		for _, r := range rates {
			if r.ItemName == itemName {
				return r.UnitPrice, true
			}
		}
	}
	return etrate.DefaultMaterialUnit, true
}

// addReturnFees 8. 退货相关费用：回收费、区间别退货快递费、退货录像费
func (b *FeeBuilder) addReturnFees(ctx context.Context, st *buildState) {
	returns, err := b.sources.FetchPostalReturns(ctx, st.vendor.ID, st.from, st.to)
	if err != nil {
		st.warns.Addf("postal returns unavailable: %v", err)
		return
	}
	if len(returns) == 0 {
		return
	}
	count := int64(len(returns))

	if unit, ok := b.rates.FlagRate(ctx, etrate.ItemReturnPickup); ok {
		st.append(etinvoice.NewLineItem(LineReturnPickup, count, unit))
	} else {
		st.warns.Addf("%v, return pickup skipped", errorx.NewConfigError(etrate.ItemReturnPickup))
	}

	tiers, err := b.rates.Tiers(ctx, st.vendor.NormalizedRatePlan())
	if err != nil {
		st.warns.Addf("shipping zones for plan %q unavailable: %v", st.vendor.NormalizedRatePlan(), err)
	} else {
		volumes := make([]int64, len(returns))
		for i, r := range returns {
			volumes[i] = r.Volume
		}
		for _, zc := range bucketByZone(volumes, tiers) {
			st.append(etinvoice.NewLineItem(fmt.Sprintf("Return Courier Fee (%s)", zc.Label), zc.Count, zc.UnitPrice))
		}
	}

	if st.vendor.VideoRetF {
		if unit, ok := b.rates.FlagRate(ctx, etrate.ItemReturnVideo); ok {
			st.append(etinvoice.NewLineItem(LineReturnVideo, count, unit))
		} else {
			st.warns.Addf("%v, return video skipped", errorx.NewConfigError(etrate.ItemReturnVideo))
		}
	}
}

// addPackagingMaterial 9. 包材费：按快递费区间分桶结果逐区间挑选包装袋/纸箱
// 开启快递袋开关（或历史写法 PP 袋 + 自备纸箱同时开启）时，
// 极小件用小号快递袋、小/中件用大号快递袋，其余尺寸用对应纸箱。
func (b *FeeBuilder) addPackagingMaterial(ctx context.Context, st *buildState) {
	if len(st.zoneCounts) == 0 {
		return
	}
	rates, err := b.rates.MaterialRates(ctx)
	if err != nil {
		st.warns.Addf("material rates unavailable: %v", err)
		return
	}

	useMailer := st.vendor.MailerF || (st.vendor.PPBagF && st.vendor.CustBoxF)
	for _, zc := range st.zoneCounts {
		rate := pickMaterial(rates, zc.Label, useMailer)
		if rate == nil {
			continue
		}
		st.append(etinvoice.NewLineItem(rate.ItemName, zc.Count, rate.UnitPrice))
	}
}

// pickMaterial 为一个尺寸区间挑选包材条目
// 快递袋只覆盖 XS/S/M，更大尺寸以及未配置快递袋时回落到同尺寸纸箱。
func pickMaterial(rates []*etrate.MaterialRate, zoneLabel string, useMailer bool) *etrate.MaterialRate {
	if useMailer {
		switch zoneLabel {
		case etrate.ZoneXS:
			if r := findMaterial(rates, etrate.ZoneXS, "Mailer", "Small"); r != nil {
				return r
			}
		case etrate.ZoneS, etrate.ZoneM:
			if r := findMaterial(rates, etrate.ZoneM, "Mailer", "Large"); r != nil {
				return r
			}
		}
	}
	return findMaterial(rates, zoneLabel, "Box")
}

// findMaterial 查找尺寸码匹配且条目名包含全部关键词的首个包材条目
func findMaterial(rates []*etrate.MaterialRate, sizeCode string, keywords ...string) *etrate.MaterialRate {
	for _, r := range rates {
		if r.SizeCode != sizeCode {
			continue
		}
		matched := true
		for _, kw := range keywords {
			if !strings.Contains(r.ItemName, kw) {
				matched = false
				break
			}
		}
		if matched {
			return r
		}
	}
	return nil
}

// addStorageCharges 10. 周期性保管费：账期所在月份生效的登记行，合并同类项
func (b *FeeBuilder) addStorageCharges(ctx context.Context, st *buildState) {
	period := st.from.Format("2006-01")
	rows, err := b.sources.StorageCharges(ctx, st.vendor.ID, period)
	if err != nil {
		st.warns.Addf("storage charges unavailable: %v", err)
		return
	}
	groupCharges(st, rows, func(r *etsource.StorageCharge) (string, int64, int64, int64, string) {
		return r.ItemName, r.Qty, r.UnitPrice, r.Amount, r.Remark
	})
}

// addVendorCharges 11. 临时性附加费：生效中的登记行，合并同类项，备注并入行名
func (b *FeeBuilder) addVendorCharges(ctx context.Context, st *buildState) {
	rows, err := b.sources.VendorCharges(ctx, st.vendor.ID)
	if err != nil {
		st.warns.Addf("vendor charges unavailable: %v", err)
		return
	}
	groupCharges(st, rows, func(r *etsource.VendorCharge) (string, int64, int64, int64, string) {
		return r.ItemName, r.Qty, r.UnitPrice, r.Amount, r.Remark
	})
}

// groupCharges 登记类费用行合并：按（条目名，单价，备注）聚合数量与金额
// 备注非空时并入行名。金额取各行金额之和，保留登记时的手工调整。
func groupCharges[T any](st *buildState, rows []T, fields func(T) (name string, qty, unitPrice, amount int64, remark string)) {
	type agg struct {
		qty    int64
		amount int64
	}
	groups := make(map[workLogGroup]*agg)
	var order []workLogGroup
	for _, row := range rows {
		name, qty, unitPrice, amount, remark := fields(row)
		key := workLogGroup{
			category:  strings.TrimSpace(name),
			unitPrice: unitPrice,
			remark:    strings.TrimSpace(remark),
		}
		g, ok := groups[key]
		if !ok {
			g = &agg{}
			groups[key] = g
			order = append(order, key)
		}
		g.qty += qty
		g.amount += amount
	}

	for _, key := range order {
		g := groups[key]
		name := key.category
		if key.remark != "" {
			name = fmt.Sprintf("%s (%s)", key.category, key.remark)
		}
		st.append(etinvoice.LineItem{
			Name:      name,
			Qty:       g.qty,
			UnitPrice: key.unitPrice,
			Amount:    g.amount,
			Remark:    key.remark,
		})
	}
}
