package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/serializer"
	"github.com/iris-hq/iris-os/internal/modules/service"
	"gorm.io/datatypes"
)

type FinanceHandler struct {
	svc service.FinanceService
}

func NewFinanceHandler(s service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: s}
}

func workspaceFromCtx(c *gin.Context) (*model.Workspace, bool) {
	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
	}
	return ws, ok
}

func parseClientIDQuery(c *gin.Context) (uuid.UUID, bool) {
	clientID, err := uuid.Parse(c.Query("client_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return uuid.Nil, false
	}
	return clientID, true
}

type CreateInvoiceReq struct {
	ClientID    string                 `form:"client_id" json:"client_id" binding:"required,uuid"`
	ProjectID   string                 `form:"project_id" json:"project_id" binding:"omitempty,uuid"`
	Number      string                 `form:"number" json:"number" binding:"required"`
	AmountCents int64                  `form:"amount_cents" json:"amount_cents" binding:"min=0"`
	Currency    string                 `form:"currency,default=USD" json:"currency"`
	Status      string                 `form:"status,default=draft" json:"status" binding:"omitempty,oneof=draft sent paid void"`
	DueAt       *time.Time             `form:"due_at" json:"due_at"`
	Meta        map[string]interface{} `form:"meta" json:"meta"`
}

// CreateInvoice godoc
//
//	@Summary		Create invoice
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateInvoiceReq	true	"CreateInvoice payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Invoice}
//	@Router			/invoice [post]
func (h *FinanceHandler) CreateInvoice(c *gin.Context) {
	req := CreateInvoiceReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	inv := model.Invoice{
		WorkspaceID: ws.ID,
		ClientID:    clientID,
		Number:      req.Number,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Status:      req.Status,
		DueAt:       req.DueAt,
		Meta:        datatypes.JSONMap(req.Meta),
	}
	if req.ProjectID != "" {
		pid, perr := uuid.Parse(req.ProjectID)
		if perr != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", perr))
			return
		}
		inv.ProjectID = &pid
	}

	if err := h.svc.CreateInvoice(c.Request.Context(), &inv); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: inv})
}

// GetInvoices godoc
//
//	@Summary		List invoices
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			client_id	query	string	true	"Client ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Invoice}
//	@Router			/invoice [get]
func (h *FinanceHandler) GetInvoices(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}
	clientID, ok := parseClientIDQuery(c)
	if !ok {
		return
	}

	invoices, err := h.svc.ListInvoices(c.Request.Context(), ws.ID, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: invoices})
}

// DeleteInvoice godoc
//
//	@Summary		Delete invoice
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			invoice_id	path	string	true	"Invoice ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/invoice/{invoice_id} [delete]
func (h *FinanceHandler) DeleteInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("invoice_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteInvoice(c.Request.Context(), ws.ID, invoiceID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type CreateQuotationReq struct {
	ClientID    string                 `form:"client_id" json:"client_id" binding:"required,uuid"`
	Number      string                 `form:"number" json:"number" binding:"required"`
	AmountCents int64                  `form:"amount_cents" json:"amount_cents" binding:"min=0"`
	Currency    string                 `form:"currency,default=USD" json:"currency"`
	Status      string                 `form:"status,default=draft" json:"status" binding:"omitempty,oneof=draft sent accepted rejected"`
	Meta        map[string]interface{} `form:"meta" json:"meta"`
}

// CreateQuotation godoc
//
//	@Summary		Create quotation
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateQuotationReq	true	"CreateQuotation payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Quotation}
//	@Router			/quotation [post]
func (h *FinanceHandler) CreateQuotation(c *gin.Context) {
	req := CreateQuotationReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	q := model.Quotation{
		WorkspaceID: ws.ID,
		ClientID:    clientID,
		Number:      req.Number,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Status:      req.Status,
		Meta:        datatypes.JSONMap(req.Meta),
	}
	if err := h.svc.CreateQuotation(c.Request.Context(), &q); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: q})
}

// GetQuotations godoc
//
//	@Summary		List quotations
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			client_id	query	string	true	"Client ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Quotation}
//	@Router			/quotation [get]
func (h *FinanceHandler) GetQuotations(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}
	clientID, ok := parseClientIDQuery(c)
	if !ok {
		return
	}

	quotations, err := h.svc.ListQuotations(c.Request.Context(), ws.ID, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: quotations})
}

// DeleteQuotation godoc
//
//	@Summary		Delete quotation
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			quotation_id	path	string	true	"Quotation ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/quotation/{quotation_id} [delete]
func (h *FinanceHandler) DeleteQuotation(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("quotation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteQuotation(c.Request.Context(), ws.ID, quotationID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type CreateApprovalReq struct {
	ClientID string                 `form:"client_id" json:"client_id" binding:"required,uuid"`
	Subject  string                 `form:"subject" json:"subject" binding:"required"`
	Meta     map[string]interface{} `form:"meta" json:"meta"`
}

// CreateApproval godoc
//
//	@Summary		Create client approval
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateApprovalReq	true	"CreateApproval payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.ClientApproval}
//	@Router			/approval [post]
func (h *FinanceHandler) CreateApproval(c *gin.Context) {
	req := CreateApprovalReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	a := model.ClientApproval{
		WorkspaceID: ws.ID,
		ClientID:    clientID,
		Subject:     req.Subject,
		Meta:        datatypes.JSONMap(req.Meta),
	}
	if err := h.svc.CreateApproval(c.Request.Context(), &a); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: a})
}

type DecideApprovalReq struct {
	Status string `form:"status" json:"status" binding:"required,oneof=approved rejected"`
}

// DecideApproval godoc
//
//	@Summary		Decide client approval
//	@Description	Mark a pending approval as approved or rejected
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			approval_id	path	string						true	"Approval ID"	Format(uuid)
//	@Param			payload		body	handler.DecideApprovalReq	true	"DecideApproval payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/approval/{approval_id}/decide [post]
func (h *FinanceHandler) DecideApproval(c *gin.Context) {
	req := DecideApprovalReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	approvalID, err := uuid.Parse(c.Param("approval_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	if err := h.svc.UpdateApproval(c.Request.Context(), &model.ClientApproval{
		ID:          approvalID,
		WorkspaceID: ws.ID,
		Status:      req.Status,
		DecidedAt:   &now,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// GetApprovals godoc
//
//	@Summary		List client approvals
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			client_id	query	string	true	"Client ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.ClientApproval}
//	@Router			/approval [get]
func (h *FinanceHandler) GetApprovals(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}
	clientID, ok := parseClientIDQuery(c)
	if !ok {
		return
	}

	approvals, err := h.svc.ListApprovals(c.Request.Context(), ws.ID, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: approvals})
}

type CreatePaymentReq struct {
	ClientID    string     `form:"client_id" json:"client_id" binding:"required,uuid"`
	InvoiceID   string     `form:"invoice_id" json:"invoice_id" binding:"omitempty,uuid"`
	AmountCents int64      `form:"amount_cents" json:"amount_cents" binding:"min=0"`
	Currency    string     `form:"currency,default=USD" json:"currency"`
	Method      string     `form:"method" json:"method"`
	PaidAt      *time.Time `form:"paid_at" json:"paid_at"`
}

// CreatePayment godoc
//
//	@Summary		Create payment
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreatePaymentReq	true	"CreatePayment payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Payment}
//	@Router			/payment [post]
func (h *FinanceHandler) CreatePayment(c *gin.Context) {
	req := CreatePaymentReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p := model.Payment{
		WorkspaceID: ws.ID,
		ClientID:    clientID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Method:      req.Method,
		PaidAt:      req.PaidAt,
	}
	if req.InvoiceID != "" {
		iid, ierr := uuid.Parse(req.InvoiceID)
		if ierr != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", ierr))
			return
		}
		p.InvoiceID = &iid
	}

	if err := h.svc.CreatePayment(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: p})
}

// GetPayments godoc
//
//	@Summary		List payments
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			client_id	query	string	true	"Client ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Payment}
//	@Router			/payment [get]
func (h *FinanceHandler) GetPayments(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}
	clientID, ok := parseClientIDQuery(c)
	if !ok {
		return
	}

	payments, err := h.svc.ListPayments(c.Request.Context(), ws.ID, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: payments})
}
