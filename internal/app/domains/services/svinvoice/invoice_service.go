package svinvoice

import (
	"context"

	"fbp/billing/internal/app/domains/entity/etinvoice"
	"fbp/billing/internal/app/domains/repo/rpinvoice"
	"fbp/billing/internal/app/pkg/logger"
)

// ListResult 发票列表查询结果
type ListResult struct {
	Invoices []*etinvoice.Invoice
	Sum      int64    // 当前过滤条件下的总额合计
	Periods  []string // 存在发票的账期月份（降序），供前端过滤器使用
}

// InvoiceService 发票管理服务
// 覆盖发票生成之后的生命周期：查询、确认、撤销确认、删除。
// 状态机只有 draft ⇄ confirmed 两态，迁移必须显式。
type InvoiceService struct {
	invoiceRepo rpinvoice.InvoiceRepository
	log         logger.Logger
}

// NewInvoiceService 创建发票管理服务
func NewInvoiceService(invoiceRepo rpinvoice.InvoiceRepository, log logger.Logger) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo, log: log}
}

// Get 查询单张发票（含按位置排序的明细行）
func (s *InvoiceService) Get(ctx context.Context, invoiceID int64) (*etinvoice.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, invoiceID)
}

// List 条件查询发票列表
func (s *InvoiceService) List(ctx context.Context, filter rpinvoice.ListFilter) (*ListResult, error) {
	invoices, sum, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	periods, err := s.invoiceRepo.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	return &ListResult{Invoices: invoices, Sum: sum, Periods: periods}, nil
}

// Confirm 确认发票（draft → confirmed）
// 非草稿状态返回 ErrInvalidTransition。
func (s *InvoiceService) Confirm(ctx context.Context, invoiceID int64) error {
	if err := s.invoiceRepo.UpdateStatus(ctx, invoiceID, etinvoice.StatusDraft, etinvoice.StatusConfirmed); err != nil {
		return err
	}
	s.log.Infof(ctx, "invoice confirmed: invoice=%d", invoiceID)
	return nil
}

// Unconfirm 撤销确认（confirmed → draft）
func (s *InvoiceService) Unconfirm(ctx context.Context, invoiceID int64) error {
	if err := s.invoiceRepo.UpdateStatus(ctx, invoiceID, etinvoice.StatusConfirmed, etinvoice.StatusDraft); err != nil {
		return err
	}
	s.log.Infof(ctx, "invoice unconfirmed: invoice=%d", invoiceID)
	return nil
}

// Delete 删除发票（表头 + 明细行，单事务）
func (s *InvoiceService) Delete(ctx context.Context, invoiceID int64) error {
	if err := s.invoiceRepo.Delete(ctx, invoiceID); err != nil {
		return err
	}
	s.log.Infof(ctx, "invoice deleted: invoice=%d", invoiceID)
	return nil
}
