package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ProjectStatusActive   = "active"
	ProjectStatusOnHold   = "on_hold"
	ProjectStatusDone     = "done"
	ProjectStatusArchived = "archived"
)

type Project struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ClientID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	Name        string            `gorm:"type:text;not null" json:"name"`
	Code        string            `gorm:"type:text" json:"code"`
	Status      string            `gorm:"type:text;not null;default:'active';check:status IN ('active','on_hold','done','archived')" json:"status"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta"`

	IsArchived bool       `gorm:"not null;default:false;index" json:"is_archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	ArchivedBy string     `gorm:"type:text" json:"archived_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Project <-> Client
	Client *Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Project <-> Task
	Tasks []Task `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"tasks,omitempty"`

	// Project <-> Milestone
	Milestones []Milestone `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"milestones,omitempty"`
}

func (Project) TableName() string { return "projects" }
