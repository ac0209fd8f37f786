package svsource

import (
	"context"
	"fmt"
	"time"

	"fbp/billing/internal/app/domains/entity/etsource"
	"fbp/billing/internal/app/domains/repo/rpsource"
	"fbp/billing/internal/app/domains/services/svalias"
	"fbp/billing/internal/app/pkg/errorx"
	"fbp/billing/internal/app/pkg/logger"
)

// Aggregator 原始记录聚合器
// 按数据源类型把原始记录过滤到规范供应商 + 账期范围并去重：
//  1. 通过别名解析器取得该数据源下的完整名称集合（反向查询）
//  2. 选取供应商字段在集合内、时间戳落在 [from, to] 闭区间内的记录
//  3. 按数据源结构描述中的自然键候选列去重，保留首次出现
//
// 结构描述在构造时解析一次，未注册的数据源在构造时即失败。
type Aggregator struct {
	resolver   *svalias.Resolver
	sourceRepo rpsource.SourceRepository
	schemas    map[etsource.SourceType]etsource.Schema
	log        logger.Logger
}

// NewAggregator 创建聚合器
func NewAggregator(resolver *svalias.Resolver, sourceRepo rpsource.SourceRepository, log logger.Logger) (*Aggregator, error) {
	agg := &Aggregator{
		resolver:   resolver,
		sourceRepo: sourceRepo,
		schemas:    make(map[etsource.SourceType]etsource.Schema),
		log:        log,
	}

	for _, st := range []etsource.SourceType{
		etsource.SourceShipment,
		etsource.SourcePostalIntake,
		etsource.SourcePostalReturn,
		etsource.SourceWorkLog,
		etsource.SourceInboundSlip,
	} {
		schema, ok := etsource.SchemaFor(st)
		if !ok {
			return nil, errorx.NewSourceError(string(st), "schema not registered")
		}
		if schema.TimeField == "" {
			return nil, errorx.NewSourceError(string(st), "timestamp column not declared")
		}
		agg.schemas[st] = schema
	}

	return agg, nil
}

// Fetch 拉取某数据源下属于供应商和账期的去重记录集
// 过滤后没有记录返回空集而不是错误；只有结构性问题返回 SourceError。
func (a *Aggregator) Fetch(ctx context.Context, sourceType etsource.SourceType, vendorID int64, from, to time.Time) ([]etsource.Record, error) {
	schema, ok := a.schemas[sourceType]
	if !ok {
		return nil, errorx.NewSourceError(string(sourceType), "unknown source type")
	}

	names, err := a.resolver.AliasSet(ctx, vendorID, sourceType)
	if err != nil {
		return nil, err
	}

	records, err := a.list(ctx, sourceType, names, from, to)
	if err != nil {
		return nil, errorx.NewSourceError(string(sourceType), fmt.Sprintf("query failed: %v", err))
	}

	before := len(records)
	records = etsource.Deduplicate(records, schema)
	if dropped := before - len(records); dropped > 0 {
		a.log.Infof(ctx, "dedup %s: %d -> %d (%d dropped)", sourceType, before, len(records), dropped)
	}
	return records, nil
}

// list 按数据源类型分发到对应的仓储查询
func (a *Aggregator) list(ctx context.Context, sourceType etsource.SourceType, names []string, from, to time.Time) ([]etsource.Record, error) {
	switch sourceType {
	case etsource.SourceShipment:
		rows, err := a.sourceRepo.ListShipments(ctx, names, from, to)
		if err != nil {
			return nil, err
		}
		return toRecords(rows), nil
	case etsource.SourcePostalIntake:
		rows, err := a.sourceRepo.ListPostalIntake(ctx, names, from, to)
		if err != nil {
			return nil, err
		}
		return toRecords(rows), nil
	case etsource.SourcePostalReturn:
		rows, err := a.sourceRepo.ListPostalReturns(ctx, names, from, to)
		if err != nil {
			return nil, err
		}
		return toRecords(rows), nil
	case etsource.SourceWorkLog:
		rows, err := a.sourceRepo.ListWorkLogs(ctx, names, from, to)
		if err != nil {
			return nil, err
		}
		return toRecords(rows), nil
	case etsource.SourceInboundSlip:
		rows, err := a.sourceRepo.ListInboundSlips(ctx, names, from, to)
		if err != nil {
			return nil, err
		}
		return toRecords(rows), nil
	}
	return nil, errorx.NewSourceError(string(sourceType), "unknown source type")
}

// FetchShipments 拉取去重后的发货统计记录
func (a *Aggregator) FetchShipments(ctx context.Context, vendorID int64, from, to time.Time) ([]*etsource.ShipmentRecord, error) {
	records, err := a.Fetch(ctx, etsource.SourceShipment, vendorID, from, to)
	if err != nil {
		return nil, err
	}
	return fromRecords[*etsource.ShipmentRecord](records), nil
}

// FetchPostalIntake 拉取去重后的邮政揽收记录
func (a *Aggregator) FetchPostalIntake(ctx context.Context, vendorID int64, from, to time.Time) ([]*etsource.PostalIntakeRecord, error) {
	records, err := a.Fetch(ctx, etsource.SourcePostalIntake, vendorID, from, to)
	if err != nil {
		return nil, err
	}
	return fromRecords[*etsource.PostalIntakeRecord](records), nil
}

// FetchPostalReturns 拉取去重后的邮政退货记录
func (a *Aggregator) FetchPostalReturns(ctx context.Context, vendorID int64, from, to time.Time) ([]*etsource.PostalReturnRecord, error) {
	records, err := a.Fetch(ctx, etsource.SourcePostalReturn, vendorID, from, to)
	if err != nil {
		return nil, err
	}
	return fromRecords[*etsource.PostalReturnRecord](records), nil
}

// FetchWorkLogs 拉取人工作业日志（无自然键，去重为恒等）
func (a *Aggregator) FetchWorkLogs(ctx context.Context, vendorID int64, from, to time.Time) ([]*etsource.WorkLogRecord, error) {
	records, err := a.Fetch(ctx, etsource.SourceWorkLog, vendorID, from, to)
	if err != nil {
		return nil, err
	}
	return fromRecords[*etsource.WorkLogRecord](records), nil
}

// FetchInboundSlips 拉取入库检验单
func (a *Aggregator) FetchInboundSlips(ctx context.Context, vendorID int64, from, to time.Time) ([]*etsource.InboundSlipRecord, error) {
	records, err := a.Fetch(ctx, etsource.SourceInboundSlip, vendorID, from, to)
	if err != nil {
		return nil, err
	}
	return fromRecords[*etsource.InboundSlipRecord](records), nil
}

// StorageCharges 查询账期内生效的保管费明细
// 保管费按供应商 ID 直接关联，不走别名解析。
func (a *Aggregator) StorageCharges(ctx context.Context, vendorID int64, period string) ([]*etsource.StorageCharge, error) {
	rows, err := a.sourceRepo.ListStorageCharges(ctx, vendorID, period)
	if err != nil {
		return nil, errorx.NewSourceError("vendor_storage", fmt.Sprintf("query failed: %v", err))
	}
	return rows, nil
}

// VendorCharges 查询生效中的临时附加费用
func (a *Aggregator) VendorCharges(ctx context.Context, vendorID int64) ([]*etsource.VendorCharge, error) {
	rows, err := a.sourceRepo.ListVendorCharges(ctx, vendorID)
	if err != nil {
		return nil, errorx.NewSourceError("vendor_charges", fmt.Sprintf("query failed: %v", err))
	}
	return rows, nil
}

// toRecords 具体记录切片转统一接口切片
func toRecords[T etsource.Record](rows []T) []etsource.Record {
	out := make([]etsource.Record, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// fromRecords 接口切片转回具体记录切片
func fromRecords[T etsource.Record](records []etsource.Record) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
