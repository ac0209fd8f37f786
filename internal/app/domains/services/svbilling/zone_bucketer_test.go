package svbilling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbp/billing/internal/app/domains/entity/etrate"
)

func stdTiers() []*etrate.RateTier {
	return []*etrate.RateTier{
		{RatePlan: "STD", ZoneLabel: etrate.ZoneXS, MinBound: 0, MaxBound: 50, Price: 2100},
		{RatePlan: "STD", ZoneLabel: etrate.ZoneS, MinBound: 51, MaxBound: 70, Price: 2400},
		{RatePlan: "STD", ZoneLabel: etrate.ZoneM, MinBound: 71, MaxBound: 100, Price: 2700},
	}
}

func TestBucketByZoneBoundaryExact(t *testing.T) {
	// 闭区间边界：50 落入 XS，51 落入 S
	out := bucketByZone([]int64{50, 51, 60}, stdTiers())
	require.Len(t, out, 2)

	assert.Equal(t, etrate.ZoneXS, out[0].Label)
	assert.Equal(t, int64(1), out[0].Count)
	assert.Equal(t, int64(2100), out[0].UnitPrice)

	assert.Equal(t, etrate.ZoneS, out[1].Label)
	assert.Equal(t, int64(2), out[1].Count)
	assert.Equal(t, int64(2400), out[1].UnitPrice)
}

func TestBucketByZoneOverlappingTiersNoDoubleCount(t *testing.T) {
	// 区间配置有重叠时，每个测量值仍只计入首个命中的区间
	tiers := []*etrate.RateTier{
		{ZoneLabel: etrate.ZoneXS, MinBound: 0, MaxBound: 60, Price: 2100},
		{ZoneLabel: etrate.ZoneS, MinBound: 50, MaxBound: 80, Price: 2400},
	}
	out := bucketByZone([]int64{55, 55, 75}, tiers)
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].Count)
	assert.Equal(t, int64(1), out[1].Count)

	var total int64
	for _, zc := range out {
		total += zc.Count
	}
	assert.Equal(t, int64(3), total)
}

func TestBucketByZoneUnmatchedDropSilently(t *testing.T) {
	out := bucketByZone([]int64{30, 500}, stdTiers())
	require.Len(t, out, 1)
	assert.Equal(t, etrate.ZoneXS, out[0].Label)
	assert.Equal(t, int64(1), out[0].Count)
}

func TestBucketByZoneEmptyInputs(t *testing.T) {
	assert.Nil(t, bucketByZone(nil, stdTiers()))
	assert.Nil(t, bucketByZone([]int64{10}, nil))
}

func TestBucketByZoneSkipsEmptyTiers(t *testing.T) {
	out := bucketByZone([]int64{10, 20}, stdTiers())
	require.Len(t, out, 1, "tiers with zero hits are omitted")
	assert.Equal(t, int64(2), out[0].Count)
}
