package rpvendor

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fbp/billing/internal/app/domains/entity/etvendor"
	"fbp/billing/internal/app/pkg/errorx"
)

// VendorRepositoryImpl 供应商仓储实现（MySQL）
type VendorRepositoryImpl struct {
	db *gorm.DB
}

// NewVendorRepository 创建供应商仓储实例
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &VendorRepositoryImpl{db: db}
}

// GetByID 根据ID查询供应商
func (r *VendorRepositoryImpl) GetByID(ctx context.Context, vendorID int64) (*etvendor.Vendor, error) {
	var vendor etvendor.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", vendorID).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrVendorNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// GetByCode 根据规范名称查询供应商
func (r *VendorRepositoryImpl) GetByCode(ctx context.Context, code string) (*etvendor.Vendor, error) {
	var vendor etvendor.Vendor
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrVendorNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// List 查询全部供应商
func (r *VendorRepositoryImpl) List(ctx context.Context) ([]*etvendor.Vendor, error) {
	var vendors []*etvendor.Vendor
	if err := r.db.WithContext(ctx).Order("id").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// ListAliases 查询全部别名
func (r *VendorRepositoryImpl) ListAliases(ctx context.Context) ([]*etvendor.Alias, error) {
	var aliases []*etvendor.Alias
	if err := r.db.WithContext(ctx).Find(&aliases).Error; err != nil {
		return nil, err
	}
	return aliases, nil
}
