package rpsource

import (
	"context"
	"time"

	"fbp/billing/internal/app/domains/entity/etsource"
)

// SourceRepository 原始业务记录仓储接口（只定义，不实现）
// 各数据源由外部采集子系统写入，对计费核心只读。
// names 为规范名称 + 别名集合，时间过滤为闭区间 [from, to]。
type SourceRepository interface {
	// ListShipments 查询发货统计记录
	ListShipments(ctx context.Context, names []string, from, to time.Time) ([]*etsource.ShipmentRecord, error)

	// ListPostalIntake 查询邮政揽收记录
	ListPostalIntake(ctx context.Context, names []string, from, to time.Time) ([]*etsource.PostalIntakeRecord, error)

	// ListPostalReturns 查询邮政退货记录
	ListPostalReturns(ctx context.Context, names []string, from, to time.Time) ([]*etsource.PostalReturnRecord, error)

	// ListWorkLogs 查询人工作业日志
	ListWorkLogs(ctx context.Context, names []string, from, to time.Time) ([]*etsource.WorkLogRecord, error)

	// ListInboundSlips 查询入库检验单
	ListInboundSlips(ctx context.Context, names []string, from, to time.Time) ([]*etsource.InboundSlipRecord, error)

	// ListStorageCharges 查询周期性保管费（period 为空时不过滤账期）
	ListStorageCharges(ctx context.Context, vendorID int64, period string) ([]*etsource.StorageCharge, error)

	// ListVendorCharges 查询临时性附加费用
	ListVendorCharges(ctx context.Context, vendorID int64) ([]*etsource.VendorCharge, error)
}
