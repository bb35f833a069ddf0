package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
)

// FinanceService covers the client-scoped billing records. These rows are
// plain CRUD; the interesting part is that every one of them participates in
// the client delete cascade.
type FinanceService interface {
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

type financeService struct {
	r repo.FinanceRepo
}

func NewFinanceService(r repo.FinanceRepo) FinanceService {
	return &financeService{r: r}
}

func (s *financeService) CreateInvoice(ctx context.Context, inv *model.Invoice) error {
	return s.r.CreateInvoice(ctx, inv)
}

func (s *financeService) UpdateInvoice(ctx context.Context, inv *model.Invoice) error {
	return s.r.UpdateInvoice(ctx, inv)
}

func (s *financeService) ListInvoices(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Invoice, error) {
	return s.r.ListInvoices(ctx, workspaceID, clientID)
}

func (s *financeService) DeleteInvoice(ctx context.Context, workspaceID, invoiceID uuid.UUID) error {
	return s.r.DeleteInvoice(ctx, workspaceID, invoiceID)
}

func (s *financeService) CreateQuotation(ctx context.Context, q *model.Quotation) error {
	return s.r.CreateQuotation(ctx, q)
}

func (s *financeService) UpdateQuotation(ctx context.Context, q *model.Quotation) error {
	return s.r.UpdateQuotation(ctx, q)
}

func (s *financeService) ListQuotations(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Quotation, error) {
	return s.r.ListQuotations(ctx, workspaceID, clientID)
}

func (s *financeService) DeleteQuotation(ctx context.Context, workspaceID, quotationID uuid.UUID) error {
	return s.r.DeleteQuotation(ctx, workspaceID, quotationID)
}

func (s *financeService) CreateApproval(ctx context.Context, a *model.ClientApproval) error {
	return s.r.CreateApproval(ctx, a)
}

func (s *financeService) UpdateApproval(ctx context.Context, a *model.ClientApproval) error {
	return s.r.UpdateApproval(ctx, a)
}

func (s *financeService) ListApprovals(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.ClientApproval, error) {
	return s.r.ListApprovals(ctx, workspaceID, clientID)
}

func (s *financeService) DeleteApproval(ctx context.Context, workspaceID, approvalID uuid.UUID) error {
	return s.r.DeleteApproval(ctx, workspaceID, approvalID)
}

func (s *financeService) CreatePayment(ctx context.Context, p *model.Payment) error {
	return s.r.CreatePayment(ctx, p)
}

func (s *financeService) ListPayments(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Payment, error) {
	return s.r.ListPayments(ctx, workspaceID, clientID)
}

func (s *financeService) DeletePayment(ctx context.Context, workspaceID, paymentID uuid.UUID) error {
	return s.r.DeletePayment(ctx, workspaceID, paymentID)
}
