package etinvoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbp/billing/internal/app/pkg/errorx"
)

func TestNewLineItemComputesAmount(t *testing.T) {
	it := NewLineItem("Basic Handling", 3, 900)
	assert.Equal(t, int64(2700), it.Amount)
}

func TestNewInvoiceTotalInvariant(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	items := []LineItem{
		NewLineItem("Basic Handling", 2, 900),
		NewLineItem("Courier Fee (XS)", 1, 2100),
		{Name: "Repacking", Qty: 5, UnitPrice: 500, Amount: 2500},
	}

	inv := NewInvoice(1001, 1, from, to, items)
	assert.Equal(t, TotalOf(items), inv.TotalAmount)
	assert.Equal(t, StatusDraft, inv.Status)
	assert.Equal(t, "KRW", inv.Currency)

	require.Len(t, inv.Items, 3)
	for i, it := range inv.Items {
		assert.Equal(t, i, it.Position)
	}
}

func TestStatusTransitions(t *testing.T) {
	inv := NewInvoice(1001, 1, time.Now(), time.Now(), nil)

	require.NoError(t, inv.Confirm())
	assert.Equal(t, StatusConfirmed, inv.Status)

	// 重复确认非法
	assert.ErrorIs(t, inv.Confirm(), errorx.ErrInvalidTransition)

	require.NoError(t, inv.Unconfirm())
	assert.Equal(t, StatusDraft, inv.Status)

	// 草稿撤销确认非法
	assert.ErrorIs(t, inv.Unconfirm(), errorx.ErrInvalidTransition)
}
