package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Workspace is the tenant root. Every other record carries a WorkspaceID and
// all API access is scoped by the workspace bearer token.
type Workspace struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string            `gorm:"type:text;not null" json:"name"`
	SecretKey string            `gorm:"type:varchar(64);uniqueIndex;not null" json:"secret_key"`
	Configs   datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"configs"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Workspace <-> Client
	Clients []Client `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"clients,omitempty"`
}

func (Workspace) TableName() string { return "workspaces" }
