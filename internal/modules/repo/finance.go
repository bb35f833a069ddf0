package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

// FinanceRepo groups the client-scoped finance collections. They share the
// same simple access pattern, so one repo covers all four.
type FinanceRepo interface {
	CreateInvoice(ctx context.Context, inv *model.Invoice) error
	UpdateInvoice(ctx context.Context, inv *model.Invoice) error
	ListInvoices(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Invoice, error)
	DeleteInvoice(ctx context.Context, workspaceID, invoiceID uuid.UUID) error

	CreateQuotation(ctx context.Context, q *model.Quotation) error
	UpdateQuotation(ctx context.Context, q *model.Quotation) error
	ListQuotations(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Quotation, error)
	DeleteQuotation(ctx context.Context, workspaceID, quotationID uuid.UUID) error

	CreateApproval(ctx context.Context, a *model.ClientApproval) error
	UpdateApproval(ctx context.Context, a *model.ClientApproval) error
	ListApprovals(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.ClientApproval, error)
	DeleteApproval(ctx context.Context, workspaceID, approvalID uuid.UUID) error

	CreatePayment(ctx context.Context, p *model.Payment) error
	ListPayments(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Payment, error)
	DeletePayment(ctx context.Context, workspaceID, paymentID uuid.UUID) error
}

type financeRepo struct{ db *gorm.DB }

func NewFinanceRepo(db *gorm.DB) FinanceRepo {
	return &financeRepo{db: db}
}

func (r *financeRepo) CreateInvoice(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *financeRepo) UpdateInvoice(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", inv.WorkspaceID).
		Where(&model.Invoice{ID: inv.ID}).Updates(inv).Error
}

func (r *financeRepo) ListInvoices(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	return invoices, r.db.WithContext(ctx).
		Where("workspace_id = ? AND client_id = ?", workspaceID, clientID).
		Order("created_at DESC").Find(&invoices).Error
}

func (r *financeRepo) DeleteInvoice(ctx context.Context, workspaceID, invoiceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.Invoice{ID: invoiceID}).Error
}

func (r *financeRepo) CreateQuotation(ctx context.Context, q *model.Quotation) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *financeRepo) UpdateQuotation(ctx context.Context, q *model.Quotation) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", q.WorkspaceID).
		Where(&model.Quotation{ID: q.ID}).Updates(q).Error
}

func (r *financeRepo) ListQuotations(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Quotation, error) {
	var quotations []*model.Quotation
	return quotations, r.db.WithContext(ctx).
		Where("workspace_id = ? AND client_id = ?", workspaceID, clientID).
		Order("created_at DESC").Find(&quotations).Error
}

func (r *financeRepo) DeleteQuotation(ctx context.Context, workspaceID, quotationID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.Quotation{ID: quotationID}).Error
}

func (r *financeRepo) CreateApproval(ctx context.Context, a *model.ClientApproval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *financeRepo) UpdateApproval(ctx context.Context, a *model.ClientApproval) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", a.WorkspaceID).
		Where(&model.ClientApproval{ID: a.ID}).Updates(a).Error
}

func (r *financeRepo) ListApprovals(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.ClientApproval, error) {
	var approvals []*model.ClientApproval
	return approvals, r.db.WithContext(ctx).
		Where("workspace_id = ? AND client_id = ?", workspaceID, clientID).
		Order("created_at DESC").Find(&approvals).Error
}

func (r *financeRepo) DeleteApproval(ctx context.Context, workspaceID, approvalID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.ClientApproval{ID: approvalID}).Error
}

func (r *financeRepo) CreatePayment(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *financeRepo) ListPayments(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Payment, error) {
	var payments []*model.Payment
	return payments, r.db.WithContext(ctx).
		Where("workspace_id = ? AND client_id = ?", workspaceID, clientID).
		Order("created_at DESC").Find(&payments).Error
}

func (r *financeRepo) DeletePayment(ctx context.Context, workspaceID, paymentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.Payment{ID: paymentID}).Error
}
