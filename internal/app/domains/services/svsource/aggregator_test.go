package svsource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbp/billing/internal/app/domains/entity/etsource"
	"fbp/billing/internal/app/domains/entity/etvendor"
	"fbp/billing/internal/app/domains/services/svalias"
	"fbp/billing/internal/app/pkg/errorx"
	"fbp/billing/internal/app/pkg/logger"
)

var (
	from = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
)

type stubVendorRepo struct {
	vendors []*etvendor.Vendor
	aliases []*etvendor.Alias
}

func (s *stubVendorRepo) GetByID(ctx context.Context, vendorID int64) (*etvendor.Vendor, error) {
	for _, v := range s.vendors {
		if v.ID == vendorID {
			return v, nil
		}
	}
	return nil, errorx.ErrVendorNotFound
}

func (s *stubVendorRepo) GetByCode(ctx context.Context, code string) (*etvendor.Vendor, error) {
	for _, v := range s.vendors {
		if v.Code == code {
			return v, nil
		}
	}
	return nil, errorx.ErrVendorNotFound
}

func (s *stubVendorRepo) List(ctx context.Context) ([]*etvendor.Vendor, error) {
	return s.vendors, nil
}

func (s *stubVendorRepo) ListAliases(ctx context.Context) ([]*etvendor.Alias, error) {
	return s.aliases, nil
}

type stubSourceRepo struct {
	shipments []*etsource.ShipmentRecord

	lastNames []string
}

func (s *stubSourceRepo) ListShipments(ctx context.Context, names []string, f, t time.Time) ([]*etsource.ShipmentRecord, error) {
	s.lastNames = names
	var out []*etsource.ShipmentRecord
	for _, r := range s.shipments {
		for _, n := range names {
			if r.VendorName == n && !r.ShippedAt.Before(f) && !r.ShippedAt.After(t) {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (s *stubSourceRepo) ListPostalIntake(ctx context.Context, names []string, f, t time.Time) ([]*etsource.PostalIntakeRecord, error) {
	return nil, nil
}

func (s *stubSourceRepo) ListPostalReturns(ctx context.Context, names []string, f, t time.Time) ([]*etsource.PostalReturnRecord, error) {
	return nil, nil
}

func (s *stubSourceRepo) ListWorkLogs(ctx context.Context, names []string, f, t time.Time) ([]*etsource.WorkLogRecord, error) {
	return nil, nil
}

func (s *stubSourceRepo) ListInboundSlips(ctx context.Context, names []string, f, t time.Time) ([]*etsource.InboundSlipRecord, error) {
	return nil, nil
}

func (s *stubSourceRepo) ListStorageCharges(ctx context.Context, vendorID int64, period string) ([]*etsource.StorageCharge, error) {
	return nil, nil
}

func (s *stubSourceRepo) ListVendorCharges(ctx context.Context, vendorID int64) ([]*etsource.VendorCharge, error) {
	return nil, nil
}

func newTestAggregator(t *testing.T, vendors *stubVendorRepo, sources *stubSourceRepo) *Aggregator {
	t.Helper()
	resolver := svalias.NewResolver(vendors, time.Minute, logger.NopLogger{})
	agg, err := NewAggregator(resolver, sources, logger.NopLogger{})
	require.NoError(t, err)
	return agg
}

func TestFetchQueriesWithFullAliasSet(t *testing.T) {
	vendors := &stubVendorRepo{
		vendors: []*etvendor.Vendor{{ID: 1, Code: "ACME"}},
		aliases: []*etvendor.Alias{
			{Alias: "acme trading", SourceType: string(etsource.SourceShipment), VendorID: 1},
			{Alias: "에이스", SourceType: string(etsource.SourceAll), VendorID: 1},
		},
	}
	sources := &stubSourceRepo{}
	agg := newTestAggregator(t, vendors, sources)

	_, err := agg.Fetch(context.Background(), etsource.SourceShipment, 1, from, to)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACME", "acme trading", "에이스"}, sources.lastNames)
}

func TestFetchDeduplicatesRecords(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	vendors := &stubVendorRepo{vendors: []*etvendor.Vendor{{ID: 1, Code: "ACME"}}}
	sources := &stubSourceRepo{shipments: []*etsource.ShipmentRecord{
		{VendorName: "ACME", ShippedAt: day, TrackingNo: "6897320105"},
		{VendorName: "ACME", ShippedAt: day, TrackingNo: "6.897320105E9"}, // 同一单号的导出形态
		{VendorName: "ACME", ShippedAt: day, TrackingNo: "1112223334"},
	}}
	agg := newTestAggregator(t, vendors, sources)

	records, err := agg.Fetch(context.Background(), etsource.SourceShipment, 1, from, to)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFetchEmptyResultIsNotError(t *testing.T) {
	vendors := &stubVendorRepo{vendors: []*etvendor.Vendor{{ID: 1, Code: "ACME"}}}
	agg := newTestAggregator(t, vendors, &stubSourceRepo{})

	records, err := agg.Fetch(context.Background(), etsource.SourceShipment, 1, from, to)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchUnknownVendor(t *testing.T) {
	agg := newTestAggregator(t, &stubVendorRepo{}, &stubSourceRepo{})

	_, err := agg.Fetch(context.Background(), etsource.SourceShipment, 99, from, to)
	assert.ErrorIs(t, err, errorx.ErrVendorNotFound)
}

func TestFetchUnknownSourceType(t *testing.T) {
	vendors := &stubVendorRepo{vendors: []*etvendor.Vendor{{ID: 1, Code: "ACME"}}}
	agg := newTestAggregator(t, vendors, &stubSourceRepo{})

	_, err := agg.Fetch(context.Background(), etsource.SourceType("bogus"), 1, from, to)
	var srcErr *errorx.SourceError
	assert.ErrorAs(t, err, &srcErr)
}
