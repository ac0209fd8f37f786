package rpsource

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fbp/billing/internal/app/domains/entity/etsource"
)

// SourceRepositoryImpl 原始业务记录仓储实现（MySQL）
type SourceRepositoryImpl struct {
	db *gorm.DB
}

// NewSourceRepository 创建原始记录仓储实例
func NewSourceRepository(db *gorm.DB) SourceRepository {
	return &SourceRepositoryImpl{db: db}
}

// ListShipments 查询发货统计记录
func (r *SourceRepositoryImpl) ListShipments(ctx context.Context, names []string, from, to time.Time) ([]*etsource.ShipmentRecord, error) {
	var records []*etsource.ShipmentRecord
	err := r.db.WithContext(ctx).
		Where("vendor_name IN ?", names).
		Where("shipped_at BETWEEN ? AND ?", from, to).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListPostalIntake 查询邮政揽收记录
func (r *SourceRepositoryImpl) ListPostalIntake(ctx context.Context, names []string, from, to time.Time) ([]*etsource.PostalIntakeRecord, error) {
	var records []*etsource.PostalIntakeRecord
	err := r.db.WithContext(ctx).
		Where("sender_name IN ?", names).
		Where("accepted_at BETWEEN ? AND ?", from, to).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListPostalReturns 查询邮政退货记录
func (r *SourceRepositoryImpl) ListPostalReturns(ctx context.Context, names []string, from, to time.Time) ([]*etsource.PostalReturnRecord, error) {
	var records []*etsource.PostalReturnRecord
	err := r.db.WithContext(ctx).
		Where("receiver_name IN ?", names).
		Where("delivered_at BETWEEN ? AND ?", from, to).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListWorkLogs 查询人工作业日志
func (r *SourceRepositoryImpl) ListWorkLogs(ctx context.Context, names []string, from, to time.Time) ([]*etsource.WorkLogRecord, error) {
	var records []*etsource.WorkLogRecord
	err := r.db.WithContext(ctx).
		Where("vendor_name IN ?", names).
		Where("worked_at BETWEEN ? AND ?", from, to).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListInboundSlips 查询入库检验单
func (r *SourceRepositoryImpl) ListInboundSlips(ctx context.Context, names []string, from, to time.Time) ([]*etsource.InboundSlipRecord, error) {
	var records []*etsource.InboundSlipRecord
	err := r.db.WithContext(ctx).
		Where("vendor_name IN ?", names).
		Where("worked_at BETWEEN ? AND ?", from, to).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListStorageCharges 查询周期性保管费
func (r *SourceRepositoryImpl) ListStorageCharges(ctx context.Context, vendorID int64, period string) ([]*etsource.StorageCharge, error) {
	query := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Where("is_active = ?", true)
	if period != "" {
		query = query.Where("period = ?", period)
	}

	var charges []*etsource.StorageCharge
	if err := query.Order("id").Find(&charges).Error; err != nil {
		return nil, err
	}
	return charges, nil
}

// ListVendorCharges 查询临时性附加费用
func (r *SourceRepositoryImpl) ListVendorCharges(ctx context.Context, vendorID int64) ([]*etsource.VendorCharge, error) {
	var charges []*etsource.VendorCharge
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Where("is_active = ?", true).
		Order("id").
		Find(&charges).Error
	if err != nil {
		return nil, err
	}
	return charges, nil
}
