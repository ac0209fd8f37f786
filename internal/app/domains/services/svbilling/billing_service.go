package svbilling

import (
	"context"
	"time"

	"fbp/billing/internal/app/domains/entity/etinvoice"
	"fbp/billing/internal/app/domains/repo/rpinvoice"
	"fbp/billing/internal/app/pkg/errorx"
	"fbp/billing/internal/app/pkg/idgen"
	"fbp/billing/internal/app/pkg/logger"
)

// InvoiceResult 单次计费结果
type InvoiceResult struct {
	Items    []etinvoice.LineItem `json:"items"`
	Total    int64                `json:"total"`
	Warnings []string             `json:"warnings"`
}

// PersistOptions 落库行为选项
// 默认为追加模式：每次调用生成一张新发票。
// IdempotencyKey 非空时重放返回既有发票 ID 而不是新建；
// UpsertByPeriod 为真时替换同供应商同账期的既有草稿（已确认的发票不可覆盖）。
type PersistOptions struct {
	IdempotencyKey string
	UpsertByPeriod bool
}

// BillingService 计费服务
// Compute 只读不写；ComputeAndPersist 在单个事务内写入表头和全部明细行。
type BillingService struct {
	builder     *FeeBuilder
	invoiceRepo rpinvoice.InvoiceRepository
	idGen       *idgen.InvoiceIDGenerator
	log         logger.Logger
}

// NewBillingService 创建计费服务
func NewBillingService(builder *FeeBuilder, invoiceRepo rpinvoice.InvoiceRepository, idGen *idgen.InvoiceIDGenerator, log logger.Logger) *BillingService {
	return &BillingService{
		builder:     builder,
		invoiceRepo: invoiceRepo,
		idGen:       idGen,
		log:         log,
	}
}

// Compute 计算供应商账期费用，不写发票存储
// 账期为闭区间 [from, to]，from 晚于 to 时返回 ErrInvalidPeriod。
func (s *BillingService) Compute(ctx context.Context, vendorID int64, from, to time.Time) (*InvoiceResult, error) {
	if from.After(to) {
		return nil, errorx.ErrInvalidPeriod
	}

	items, warnings, err := s.builder.Build(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []etinvoice.LineItem{}
	}
	return &InvoiceResult{
		Items:    items,
		Total:    etinvoice.TotalOf(items),
		Warnings: warnings,
	}, nil
}

// ComputeAndPersist 计算并落库为草稿发票，返回发票 ID
// 表头和明细行在同一事务内写入，不会产生部分落库。
func (s *BillingService) ComputeAndPersist(ctx context.Context, vendorID int64, from, to time.Time, opts PersistOptions) (int64, *InvoiceResult, error) {
	if opts.IdempotencyKey != "" {
		existing, err := s.invoiceRepo.GetByIdempotencyKey(ctx, opts.IdempotencyKey)
		if err != nil {
			return 0, nil, err
		}
		if existing != nil {
			s.log.Infof(ctx, "idempotent replay: key=%s invoice=%d", opts.IdempotencyKey, existing.ID)
			return existing.ID, resultOf(existing), nil
		}
	}

	result, err := s.Compute(ctx, vendorID, from, to)
	if err != nil {
		return 0, nil, err
	}

	inv := etinvoice.NewInvoice(s.idGen.NextID(), vendorID, from, to, result.Items)
	if opts.IdempotencyKey != "" {
		key := opts.IdempotencyKey
		inv.IdempotencyKey = &key
	}

	if opts.UpsertByPeriod {
		existing, err := s.invoiceRepo.FindByPeriod(ctx, vendorID, from, to)
		if err != nil {
			return 0, nil, err
		}
		if existing != nil {
			if existing.Status == etinvoice.StatusConfirmed {
				return 0, nil, errorx.ErrInvoiceConfirmed
			}
			if err := s.invoiceRepo.ReplaceDraft(ctx, existing.ID, inv); err != nil {
				return 0, nil, err
			}
			s.log.Infof(ctx, "invoice replaced: vendor=%d invoice=%d total=%d", vendorID, existing.ID, result.Total)
			return existing.ID, result, nil
		}
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return 0, nil, err
	}
	s.log.Infof(ctx, "invoice created: vendor=%d invoice=%d items=%d total=%d",
		vendorID, inv.ID, len(result.Items), result.Total)
	return inv.ID, result, nil
}

// resultOf 从既有发票还原计费结果（幂等重放路径）
func resultOf(inv *etinvoice.Invoice) *InvoiceResult {
	items := make([]etinvoice.LineItem, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, etinvoice.LineItem{
			Name:      it.ItemName,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Amount:    it.Amount,
			Remark:    it.Remark,
		})
	}
	return &InvoiceResult{
		Items:    items,
		Total:    inv.TotalAmount,
		Warnings: []string{},
	}
}
