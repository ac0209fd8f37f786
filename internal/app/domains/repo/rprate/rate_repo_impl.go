package rprate

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fbp/billing/internal/app/domains/entity/etrate"
)

// RateRepositoryImpl 费率仓储实现（MySQL）
type RateRepositoryImpl struct {
	db *gorm.DB
}

// NewRateRepository 创建费率仓储实例
func NewRateRepository(db *gorm.DB) RateRepository {
	return &RateRepositoryImpl{db: db}
}

// ListTiers 查询费率方案的分段区间，按 min_bound 升序
func (r *RateRepositoryImpl) ListTiers(ctx context.Context, ratePlan string) ([]*etrate.RateTier, error) {
	var tiers []*etrate.RateTier
	err := r.db.WithContext(ctx).
		Where("rate_plan = ?", ratePlan).
		Order("min_bound ASC").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

// GetFlatRate 查询固定单价，缺失时返回 (nil, nil)
func (r *RateRepositoryImpl) GetFlatRate(ctx context.Context, itemName string) (*etrate.FlatRate, error) {
	var rate etrate.FlatRate
	err := r.db.WithContext(ctx).Where("item_name = ?", itemName).First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

// GetFlagRate 查询开关类附加费单价，缺失时返回 (nil, nil)
func (r *RateRepositoryImpl) GetFlagRate(ctx context.Context, itemName string) (*etrate.FlagRate, error) {
	var rate etrate.FlagRate
	err := r.db.WithContext(ctx).Where("item_name = ?", itemName).First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

// ListMaterialRates 查询全部包材单价
func (r *RateRepositoryImpl) ListMaterialRates(ctx context.Context) ([]*etrate.MaterialRate, error) {
	var rates []*etrate.MaterialRate
	if err := r.db.WithContext(ctx).Order("id").Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}
