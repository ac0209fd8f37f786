package mdvendor

import (
	"context"

	"fbp/billing/internal/app/domains/entity/etvendor"
	"fbp/billing/internal/app/domains/repo/rpvendor"
)

// VendorModule 供应商模块
type VendorModule struct {
	vendorRepo rpvendor.VendorRepository
}

// NewVendorModule 创建供应商模块
func NewVendorModule(vendorRepo rpvendor.VendorRepository) *VendorModule {
	return &VendorModule{
		vendorRepo: vendorRepo,
	}
}

// GetVendor 查询供应商
func (m *VendorModule) GetVendor(ctx context.Context, vendorID int64) (*etvendor.Vendor, error) {
	return m.vendorRepo.GetByID(ctx, vendorID)
}

// GetVendorByCode 根据规范名称查询供应商
func (m *VendorModule) GetVendorByCode(ctx context.Context, code string) (*etvendor.Vendor, error) {
	return m.vendorRepo.GetByCode(ctx, code)
}

// ListVendors 查询全部供应商（含服务开关和费率方案）
func (m *VendorModule) ListVendors(ctx context.Context) ([]*etvendor.Vendor, error) {
	return m.vendorRepo.List(ctx)
}
