package rpvendor

import (
	"context"

	"fbp/billing/internal/app/domains/entity/etvendor"
)

// VendorRepository 供应商仓储接口（只定义，不实现）
// 供应商与别名由外部后台管理工具写入，这里只提供读取。
type VendorRepository interface {
	// GetByID 根据ID查询供应商
	GetByID(ctx context.Context, vendorID int64) (*etvendor.Vendor, error)

	// GetByCode 根据规范名称查询供应商
	GetByCode(ctx context.Context, code string) (*etvendor.Vendor, error)

	// List 查询全部供应商
	List(ctx context.Context) ([]*etvendor.Vendor, error)

	// ListAliases 查询全部别名（别名解析缓存整表加载）
	ListAliases(ctx context.Context) ([]*etvendor.Alias, error)
}
