package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Client is the root of a folder subtree and of a cascade tree: deleting a
// client removes its projects, finance records, CRM records and, on explicit
// request, its folders and files.
type Client struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name        string            `gorm:"type:text;not null" json:"name"`
	Company     string            `gorm:"type:text" json:"company"`
	Email       string            `gorm:"type:text" json:"email"`
	Phone       string            `gorm:"type:text" json:"phone"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Client <-> Workspace
	Workspace *Workspace `gorm:"foreignKey:WorkspaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Client <-> Project
	Projects []Project `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"projects,omitempty"`
}

func (Client) TableName() string { return "clients" }
