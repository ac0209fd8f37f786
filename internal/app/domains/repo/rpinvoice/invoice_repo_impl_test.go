package rpinvoice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fbp/billing/internal/app/domains/entity/etinvoice"
	"fbp/billing/internal/app/pkg/errorx"
)

func newTestRepo(t *testing.T) InvoiceRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&etinvoice.Invoice{}, &etinvoice.InvoiceItem{}))
	return NewInvoiceRepository(db)
}

func testInvoice(id int64) *etinvoice.Invoice {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	items := []etinvoice.LineItem{
		etinvoice.NewLineItem("Basic Handling", 2, 900),
		etinvoice.NewLineItem("Courier Fee (XS)", 1, 2100),
	}
	return etinvoice.NewInvoice(id, 1, from, to, items)
}

func TestCreateWritesHeaderAndItems(t *testing.T) {
	repo := newTestRepo(t)
	inv := testInvoice(1001)

	require.NoError(t, repo.Create(context.Background(), inv))

	got, err := repo.GetByID(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, etinvoice.StatusDraft, got.Status)
	assert.Equal(t, int64(3900), got.TotalAmount)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Basic Handling", got.Items[0].ItemName, "items keep position order")
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, errorx.ErrInvoiceNotFound)
}

func TestRepeatedCreateKeepsBothInvoices(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Create(context.Background(), testInvoice(1001)))
	require.NoError(t, repo.Create(context.Background(), testInvoice(1002)))

	inv1, err := repo.GetByID(context.Background(), 1001)
	require.NoError(t, err)
	inv2, err := repo.GetByID(context.Background(), 1002)
	require.NoError(t, err)
	assert.Equal(t, inv1.TotalAmount, inv2.TotalAmount)
}

func TestGetByIdempotencyKey(t *testing.T) {
	repo := newTestRepo(t)

	inv := testInvoice(1001)
	key := "inv-2025-06-x"
	inv.IdempotencyKey = &key
	require.NoError(t, repo.Create(context.Background(), inv))

	got, err := repo.GetByIdempotencyKey(context.Background(), key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1001), got.ID)

	// 幂等重放路径依赖明细行随表头一起返回
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Basic Handling", got.Items[0].ItemName, "items keep position order")
	assert.Equal(t, "Courier Fee (XS)", got.Items[1].ItemName)

	miss, err := repo.GetByIdempotencyKey(context.Background(), "other-key")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestFindByPeriod(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Create(context.Background(), testInvoice(1001)))

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	got, err := repo.FindByPeriod(context.Background(), 1, from, to)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1001), got.ID)

	miss, err := repo.FindByPeriod(context.Background(), 2, from, to)
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestReplaceDraftSwapsItems(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Create(context.Background(), testInvoice(1001)))

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	replacement := etinvoice.NewInvoice(2002, 1, from, to, []etinvoice.LineItem{
		etinvoice.NewLineItem("Basic Handling", 5, 900),
	})

	require.NoError(t, repo.ReplaceDraft(context.Background(), 1001, replacement))

	got, err := repo.GetByID(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), got.TotalAmount)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(5), got.Items[0].Qty)
}

func TestReplaceDraftRejectsConfirmed(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Create(context.Background(), testInvoice(1001)))
	require.NoError(t, repo.UpdateStatus(context.Background(), 1001,
		etinvoice.StatusDraft, etinvoice.StatusConfirmed))

	err := repo.ReplaceDraft(context.Background(), 1001, testInvoice(2002))
	assert.ErrorIs(t, err, errorx.ErrInvoiceConfirmed)
}

func TestUpdateStatusGuards(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Create(context.Background(), testInvoice(1001)))

	// draft → confirmed
	require.NoError(t, repo.UpdateStatus(context.Background(), 1001,
		etinvoice.StatusDraft, etinvoice.StatusConfirmed))

	// 重复确认：前置状态不匹配
	err := repo.UpdateStatus(context.Background(), 1001,
		etinvoice.StatusDraft, etinvoice.StatusConfirmed)
	assert.ErrorIs(t, err, errorx.ErrInvalidTransition)

	// confirmed → draft
	require.NoError(t, repo.UpdateStatus(context.Background(), 1001,
		etinvoice.StatusConfirmed, etinvoice.StatusDraft))

	// 不存在的发票
	err = repo.UpdateStatus(context.Background(), 404,
		etinvoice.StatusDraft, etinvoice.StatusConfirmed)
	assert.ErrorIs(t, err, errorx.ErrInvoiceNotFound)
}

func TestDeleteRemovesHeaderAndItems(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Create(context.Background(), testInvoice(1001)))

	require.NoError(t, repo.Delete(context.Background(), 1001))

	_, err := repo.GetByID(context.Background(), 1001)
	assert.ErrorIs(t, err, errorx.ErrInvoiceNotFound)

	err = repo.Delete(context.Background(), 1001)
	assert.ErrorIs(t, err, errorx.ErrInvoiceNotFound)
}
