package svrate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbp/billing/internal/app/domains/entity/etrate"
	"fbp/billing/internal/app/pkg/logger"
)

// stubRateRepo 内存费率仓储
type stubRateRepo struct {
	flat     map[string]int64
	flag     map[string]int64
	tiers    []*etrate.RateTier
	material []*etrate.MaterialRate

	materialCalls int
}

func (s *stubRateRepo) ListTiers(ctx context.Context, ratePlan string) ([]*etrate.RateTier, error) {
	var out []*etrate.RateTier
	for _, t := range s.tiers {
		if t.RatePlan == ratePlan {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubRateRepo) GetFlatRate(ctx context.Context, itemName string) (*etrate.FlatRate, error) {
	if p, ok := s.flat[itemName]; ok {
		return &etrate.FlatRate{ItemName: itemName, UnitPrice: p}, nil
	}
	return nil, nil
}

func (s *stubRateRepo) GetFlagRate(ctx context.Context, itemName string) (*etrate.FlagRate, error) {
	if p, ok := s.flag[itemName]; ok {
		return &etrate.FlagRate{ItemName: itemName, UnitPrice: p}, nil
	}
	return nil, nil
}

func (s *stubRateRepo) ListMaterialRates(ctx context.Context) ([]*etrate.MaterialRate, error) {
	s.materialCalls++
	return s.material, nil
}

func TestFlatRatePrefersConfiguredValue(t *testing.T) {
	repo := &stubRateRepo{flat: map[string]int64{etrate.ItemBasicHandling: 950}}
	c := NewCatalog(repo, time.Minute, logger.NopLogger{})

	price, ok := c.FlatRate(context.Background(), etrate.ItemBasicHandling)
	require.True(t, ok)
	assert.Equal(t, int64(950), price)
}

func TestFlatRateFallsBackToDefault(t *testing.T) {
	c := NewCatalog(&stubRateRepo{}, time.Minute, logger.NopLogger{})

	price, ok := c.FlatRate(context.Background(), etrate.ItemBasicHandling)
	require.True(t, ok)
	assert.Equal(t, int64(900), price)
}

func TestFlagRateDefaults(t *testing.T) {
	c := NewCatalog(&stubRateRepo{}, time.Minute, logger.NopLogger{})

	cases := map[string]int64{
		etrate.ItemOutboundVideo: 200,
		etrate.ItemReturnVideo:   400,
		etrate.ItemReturnPickup:  1100,
	}
	for item, want := range cases {
		price, ok := c.FlagRate(context.Background(), item)
		require.True(t, ok, item)
		assert.Equal(t, want, price, item)
	}
}

func TestRateWithoutDefaultIsAbsent(t *testing.T) {
	c := NewCatalog(&stubRateRepo{}, time.Minute, logger.NopLogger{})

	// 入库检验没有兜底默认值，缺失时该费用项缺席
	_, ok := c.FlagRate(context.Background(), etrate.ItemInboundInspection)
	assert.False(t, ok)

	_, ok = c.FlatRate(context.Background(), "no_such_item")
	assert.False(t, ok)
}

func TestTiersSortedAscending(t *testing.T) {
	repo := &stubRateRepo{tiers: []*etrate.RateTier{
		{RatePlan: "STD", ZoneLabel: etrate.ZoneM, MinBound: 81, MaxBound: 100, Price: 2700},
		{RatePlan: "STD", ZoneLabel: etrate.ZoneXS, MinBound: 0, MaxBound: 50, Price: 2100},
		{RatePlan: "STD", ZoneLabel: etrate.ZoneS, MinBound: 51, MaxBound: 80, Price: 2400},
	}}
	c := NewCatalog(repo, time.Minute, logger.NopLogger{})

	tiers, err := c.Tiers(context.Background(), "STD")
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.Equal(t, []string{etrate.ZoneXS, etrate.ZoneS, etrate.ZoneM},
		[]string{tiers[0].ZoneLabel, tiers[1].ZoneLabel, tiers[2].ZoneLabel})
}

func TestMaterialRatesSnapshotAndInvalidate(t *testing.T) {
	repo := &stubRateRepo{material: []*etrate.MaterialRate{
		{SizeCode: etrate.ZoneXS, ItemName: "Mailer (Small)", UnitPrice: 70},
	}}
	c := NewCatalog(repo, time.Minute, logger.NopLogger{})

	_, err := c.MaterialRates(context.Background())
	require.NoError(t, err)
	_, err = c.MaterialRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.materialCalls)

	c.Invalidate()
	_, err = c.MaterialRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.materialCalls)
}
