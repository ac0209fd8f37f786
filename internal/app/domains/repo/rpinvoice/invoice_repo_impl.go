package rpinvoice

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fbp/billing/internal/app/domains/entity/etinvoice"
	"fbp/billing/internal/app/pkg/errorx"
)

// InvoiceRepositoryImpl 发票仓储实现（MySQL）
type InvoiceRepositoryImpl struct {
	db *gorm.DB
}

// NewInvoiceRepository 创建发票仓储实例
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &InvoiceRepositoryImpl{db: db}
}

// Create 创建发票（表头 + 明细行，单事务）
func (r *InvoiceRepositoryImpl) Create(ctx context.Context, inv *etinvoice.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header := *inv
		header.Items = nil
		if err := tx.Create(&header).Error; err != nil {
			return err
		}
		if len(inv.Items) > 0 {
			items := make([]etinvoice.InvoiceItem, len(inv.Items))
			copy(items, inv.Items)
			for i := range items {
				items[i].InvoiceID = inv.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errorx.NewPersistError("invoice create", err)
	}
	return nil
}

// ReplaceDraft 用新内容替换既有草稿发票
// 保留原发票ID，删除旧明细后写入新表头数据与新明细，整体单事务。
func (r *InvoiceRepositoryImpl) ReplaceDraft(ctx context.Context, existingID int64, inv *etinvoice.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&etinvoice.Invoice{}).
			Where("id = ? AND status = ?", existingID, etinvoice.StatusDraft).
			Updates(map[string]interface{}{
				"period_from":  inv.PeriodFrom,
				"period_to":    inv.PeriodTo,
				"total_amount": inv.TotalAmount,
				"updated_at":   time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errorx.ErrInvoiceConfirmed
		}

		if err := tx.Where("invoice_id = ?", existingID).
			Delete(&etinvoice.InvoiceItem{}).Error; err != nil {
			return err
		}

		if len(inv.Items) > 0 {
			items := make([]etinvoice.InvoiceItem, len(inv.Items))
			copy(items, inv.Items)
			for i := range items {
				items[i].ID = 0
				items[i].InvoiceID = existingID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errorx.ErrInvoiceConfirmed) {
			return err
		}
		return errorx.NewPersistError("invoice replace", err)
	}
	return nil
}

// GetByID 根据ID查询发票（含明细行）
func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, invoiceID int64) (*etinvoice.Invoice, error) {
	var inv etinvoice.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", invoiceID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// GetByIdempotencyKey 根据幂等键查询发票（含明细行）
// 幂等重放直接用该结果还原计费结果，明细行必须随表头一起返回。
func (r *InvoiceRepositoryImpl) GetByIdempotencyKey(ctx context.Context, key string) (*etinvoice.Invoice, error) {
	var inv etinvoice.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("idempotency_key = ?", key).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// FindByPeriod 查询指定供应商和账期的最近一张发票
func (r *InvoiceRepositoryImpl) FindByPeriod(ctx context.Context, vendorID int64, from, to time.Time) (*etinvoice.Invoice, error) {
	var inv etinvoice.Invoice
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND period_from = ? AND period_to = ?", vendorID, from, to).
		Order("created_at DESC").
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// List 条件查询发票列表，返回列表与总额合计
func (r *InvoiceRepositoryImpl) List(ctx context.Context, filter ListFilter) ([]*etinvoice.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&etinvoice.Invoice{})
	if filter.Period != "" {
		query = query.Where("DATE_FORMAT(period_from, '%Y-%m') = ?", filter.Period)
	}
	if filter.VendorID > 0 {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var invoices []*etinvoice.Invoice
	if err := query.Order("id DESC").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	var sum int64
	for _, inv := range invoices {
		sum += inv.TotalAmount
	}
	return invoices, sum, nil
}

// ListPeriods 查询存在发票的账期月份列表（降序）
func (r *InvoiceRepositoryImpl) ListPeriods(ctx context.Context) ([]string, error) {
	var periods []string
	err := r.db.WithContext(ctx).
		Model(&etinvoice.Invoice{}).
		Distinct("DATE_FORMAT(period_from, '%Y-%m')").
		Order("DATE_FORMAT(period_from, '%Y-%m') DESC").
		Pluck("DATE_FORMAT(period_from, '%Y-%m')", &periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

// UpdateStatus 状态迁移（带前置状态守卫）
// 前置状态不匹配时零行受影响，按非法迁移处理。
func (r *InvoiceRepositoryImpl) UpdateStatus(ctx context.Context, invoiceID int64, fromStatus, toStatus string) error {
	result := r.db.WithContext(ctx).
		Model(&etinvoice.Invoice{}).
		Where("id = ? AND status = ?", invoiceID, fromStatus).
		Updates(map[string]interface{}{
			"status":     toStatus,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return errorx.NewPersistError("invoice status update", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.WithContext(ctx).Model(&etinvoice.Invoice{}).
			Where("id = ?", invoiceID).Count(&count)
		if count == 0 {
			return errorx.ErrInvoiceNotFound
		}
		return errorx.ErrInvalidTransition
	}
	return nil
}

// Delete 删除发票（表头 + 明细行，单事务）
func (r *InvoiceRepositoryImpl) Delete(ctx context.Context, invoiceID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoiceID).
			Delete(&etinvoice.InvoiceItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", invoiceID).Delete(&etinvoice.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errorx.ErrInvoiceNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errorx.ErrInvoiceNotFound) {
			return err
		}
		return errorx.NewPersistError("invoice delete", err)
	}
	return nil
}
