package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project-scoped records removed by the project cascade.

type Member struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Email       string    `gorm:"type:text" json:"email"`
	Role        string    `gorm:"type:text;not null;default:'member'" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string { return "members" }

type MarketingAsset struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ProjectID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"project_id"`
	Name        string            `gorm:"type:text;not null" json:"name"`
	Channel     string            `gorm:"type:text" json:"channel"`
	URL         string            `gorm:"type:text" json:"url"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MarketingAsset) TableName() string { return "marketing_assets" }

type FreelancerAssignment struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	Freelancer  string     `gorm:"type:text;not null" json:"freelancer"`
	RateCents   int64      `gorm:"type:bigint;not null;default:0" json:"rate_cents"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FreelancerAssignment) TableName() string { return "freelancer_assignments" }
