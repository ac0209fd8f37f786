package svbilling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbp/billing/internal/app/domains/entity/etinvoice"
	"fbp/billing/internal/app/domains/entity/etsource"
	"fbp/billing/internal/app/domains/entity/etvendor"
	"fbp/billing/internal/app/domains/repo/rpinvoice"
	"fbp/billing/internal/app/pkg/errorx"
	"fbp/billing/internal/app/pkg/idgen"
	"fbp/billing/internal/app/pkg/logger"
)

// memInvoiceRepo 内存发票仓储
type memInvoiceRepo struct {
	invoices map[int64]*etinvoice.Invoice
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{invoices: make(map[int64]*etinvoice.Invoice)}
}

func (m *memInvoiceRepo) Create(ctx context.Context, inv *etinvoice.Invoice) error {
	m.invoices[inv.ID] = inv
	return nil
}

func (m *memInvoiceRepo) ReplaceDraft(ctx context.Context, existingID int64, inv *etinvoice.Invoice) error {
	old, ok := m.invoices[existingID]
	if !ok {
		return errorx.ErrInvoiceNotFound
	}
	if old.Status != etinvoice.StatusDraft {
		return errorx.ErrInvoiceConfirmed
	}
	replaced := *inv
	replaced.ID = existingID
	m.invoices[existingID] = &replaced
	return nil
}

func (m *memInvoiceRepo) GetByID(ctx context.Context, invoiceID int64) (*etinvoice.Invoice, error) {
	inv, ok := m.invoices[invoiceID]
	if !ok {
		return nil, errorx.ErrInvoiceNotFound
	}
	return inv, nil
}

func (m *memInvoiceRepo) GetByIdempotencyKey(ctx context.Context, key string) (*etinvoice.Invoice, error) {
	for _, inv := range m.invoices {
		if inv.IdempotencyKey != nil && *inv.IdempotencyKey == key {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *memInvoiceRepo) FindByPeriod(ctx context.Context, vendorID int64, from, to time.Time) (*etinvoice.Invoice, error) {
	for _, inv := range m.invoices {
		if inv.VendorID == vendorID && inv.PeriodFrom.Equal(from) && inv.PeriodTo.Equal(to) {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *memInvoiceRepo) List(ctx context.Context, filter rpinvoice.ListFilter) ([]*etinvoice.Invoice, int64, error) {
	var out []*etinvoice.Invoice
	var sum int64
	for _, inv := range m.invoices {
		out = append(out, inv)
		sum += inv.TotalAmount
	}
	return out, sum, nil
}

func (m *memInvoiceRepo) ListPeriods(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *memInvoiceRepo) UpdateStatus(ctx context.Context, invoiceID int64, fromStatus, toStatus string) error {
	inv, ok := m.invoices[invoiceID]
	if !ok {
		return errorx.ErrInvoiceNotFound
	}
	if inv.Status != fromStatus {
		return errorx.ErrInvalidTransition
	}
	inv.Status = toStatus
	return nil
}

func (m *memInvoiceRepo) Delete(ctx context.Context, invoiceID int64) error {
	if _, ok := m.invoices[invoiceID]; !ok {
		return errorx.ErrInvoiceNotFound
	}
	delete(m.invoices, invoiceID)
	return nil
}

func newTestBillingService(t *testing.T) (*BillingService, *memInvoiceRepo) {
	t.Helper()
	vendors := &stubVendorRepo{vendors: []*etvendor.Vendor{{ID: 1, Code: "X"}}}
	sources := &stubSourceRepo{shipments: []*etsource.ShipmentRecord{
		{VendorName: "X", ShippedAt: inPeriod, TrackingNo: "1000000001"},
		{VendorName: "X", ShippedAt: inPeriod, TrackingNo: "1000000002"},
	}}
	builder := newTestBuilder(t, vendors, sources, &stubRateRepo{})
	repo := newMemInvoiceRepo()
	return NewBillingService(builder, repo, idgen.NewInvoiceIDGenerator(1), logger.NopLogger{}), repo
}

func TestComputeTotalEqualsItemSum(t *testing.T) {
	svc, _ := newTestBillingService(t)

	result, err := svc.Compute(context.Background(), 1, periodFrom, periodTo)
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)

	var sum int64
	for _, it := range result.Items {
		sum += it.Amount
	}
	assert.Equal(t, sum, result.Total)
}

func TestComputeRejectsInvertedPeriod(t *testing.T) {
	svc, _ := newTestBillingService(t)

	_, err := svc.Compute(context.Background(), 1, periodTo, periodFrom)
	assert.ErrorIs(t, err, errorx.ErrInvalidPeriod)
}

func TestComputeDoesNotTouchInvoiceStore(t *testing.T) {
	svc, repo := newTestBillingService(t)

	_, err := svc.Compute(context.Background(), 1, periodFrom, periodTo)
	require.NoError(t, err)
	assert.Empty(t, repo.invoices)
}

func TestPersistTwiceCreatesTwoIdenticalInvoices(t *testing.T) {
	svc, repo := newTestBillingService(t)

	id1, r1, err := svc.ComputeAndPersist(context.Background(), 1, periodFrom, periodTo, PersistOptions{})
	require.NoError(t, err)
	id2, r2, err := svc.ComputeAndPersist(context.Background(), 1, periodFrom, periodTo, PersistOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2, "append-only mode issues distinct invoice ids")
	assert.Equal(t, r1.Total, r2.Total)
	assert.Equal(t, r1.Items, r2.Items)
	assert.Len(t, repo.invoices, 2)

	inv1 := repo.invoices[id1]
	require.NotNil(t, inv1)
	assert.Equal(t, etinvoice.StatusDraft, inv1.Status)
	assert.Equal(t, r1.Total, inv1.TotalAmount)
}

func TestPersistIdempotencyKeyReplaysExistingInvoice(t *testing.T) {
	svc, repo := newTestBillingService(t)
	opts := PersistOptions{IdempotencyKey: "inv-2025-06-x"}

	id1, r1, err := svc.ComputeAndPersist(context.Background(), 1, periodFrom, periodTo, opts)
	require.NoError(t, err)
	id2, r2, err := svc.ComputeAndPersist(context.Background(), 1, periodFrom, periodTo, opts)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Len(t, repo.invoices, 1)
	assert.Equal(t, repo.invoices[id1].TotalAmount, r2.Total)

	// 重放结果带回首次落库的全部明细行
	require.Len(t, r2.Items, len(r1.Items))
	for i, it := range r1.Items {
		assert.Equal(t, it.Name, r2.Items[i].Name)
		assert.Equal(t, it.Amount, r2.Items[i].Amount)
	}
}

func TestPersistUpsertReplacesDraft(t *testing.T) {
	svc, repo := newTestBillingService(t)
	opts := PersistOptions{UpsertByPeriod: true}

	id1, _, err := svc.ComputeAndPersist(context.Background(), 1, periodFrom, periodTo, opts)
	require.NoError(t, err)
	id2, _, err := svc.ComputeAndPersist(context.Background(), 1, periodFrom, periodTo, opts)
	require.NoError(t, err)

	assert.Equal(t, id1, id2, "upsert keeps the existing draft id")
	assert.Len(t, repo.invoices, 1)
}

func TestPersistUpsertNeverOverwritesConfirmed(t *testing.T) {
	svc, repo := newTestBillingService(t)
	opts := PersistOptions{UpsertByPeriod: true}

	id, _, err := svc.ComputeAndPersist(context.Background(), 1, periodFrom, periodTo, opts)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(context.Background(), id, etinvoice.StatusDraft, etinvoice.StatusConfirmed))

	_, _, err = svc.ComputeAndPersist(context.Background(), 1, periodFrom, periodTo, opts)
	assert.ErrorIs(t, err, errorx.ErrInvoiceConfirmed)
}
