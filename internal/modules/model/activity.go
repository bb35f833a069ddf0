package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActivityProjectDeleted       = "project_deleted"
	ActivityProjectArchived      = "project_archived"
	ActivityProjectUnarchived    = "project_unarchived"
	ActivityClientDeleted        = "client_deleted"
	ActivityClientAssetsDeleted  = "client_assets_deleted"
	ActivityClientAssetsRetained = "client_assets_retained"
)

// ActivityLog is the audit trail. Cascade and archive operations record one
// entry summarizing what they touched; project-scoped entries are themselves
// removed by the project cascade.
type ActivityLog struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ProjectID   *uuid.UUID        `gorm:"type:uuid;index" json:"project_id,omitempty"`
	ClientID    *uuid.UUID        `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Action      string            `gorm:"type:text;not null" json:"action"`
	Actor       string            `gorm:"type:text" json:"actor"`
	Detail      datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"detail"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
