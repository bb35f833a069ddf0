package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Finance records all hang off a client and are removed in the first phase
// of a client cascade delete.

type Invoice struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ClientID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	ProjectID   *uuid.UUID        `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Number      string            `gorm:"type:text;not null" json:"number"`
	AmountCents int64             `gorm:"type:bigint;not null;default:0" json:"amount_cents"`
	Currency    string            `gorm:"type:text;not null;default:'USD'" json:"currency"`
	Status      string            `gorm:"type:text;not null;default:'draft';check:status IN ('draft','sent','paid','void')" json:"status"`
	DueAt       *time.Time        `json:"due_at,omitempty"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

type Quotation struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ClientID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	Number      string            `gorm:"type:text;not null" json:"number"`
	AmountCents int64             `gorm:"type:bigint;not null;default:0" json:"amount_cents"`
	Currency    string            `gorm:"type:text;not null;default:'USD'" json:"currency"`
	Status      string            `gorm:"type:text;not null;default:'draft';check:status IN ('draft','sent','accepted','rejected')" json:"status"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Quotation) TableName() string { return "quotations" }

type ClientApproval struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ClientID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	Subject     string            `gorm:"type:text;not null" json:"subject"`
	Status      string            `gorm:"type:text;not null;default:'pending';check:status IN ('pending','approved','rejected')" json:"status"`
	DecidedAt   *time.Time        `json:"decided_at,omitempty"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ClientApproval) TableName() string { return "client_approvals" }

type Payment struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	InvoiceID   *uuid.UUID `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	AmountCents int64      `gorm:"type:bigint;not null;default:0" json:"amount_cents"`
	Currency    string     `gorm:"type:text;not null;default:'USD'" json:"currency"`
	Method      string     `gorm:"type:text" json:"method"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
