package model

import (
	"time"

	"github.com/google/uuid"
)

// Folder is a metadata record forming a logical tree; no physical filesystem
// is involved. The primary key is a deterministic composite built by
// internal/pkg/folderid (e.g. client_{clientID}_projects), so provisioning
// is idempotent by construction and lookups need no secondary index.
type Folder struct {
	ID          string     `gorm:"type:text;primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	TaskID      *uuid.UUID `gorm:"type:uuid;index" json:"task_id,omitempty"`
	MeetingID   *uuid.UUID `gorm:"type:uuid;index" json:"meeting_id,omitempty"`
	Name        string     `gorm:"type:text;not null" json:"name"`
	ParentID    *string    `gorm:"type:text;index" json:"parent_id,omitempty"`

	IsRoot            bool `gorm:"not null;default:false" json:"is_root"`
	IsArchiveRoot     bool `gorm:"not null;default:false" json:"is_archive_root"`
	IsProjectArchive  bool `gorm:"not null;default:false" json:"is_project_archive"`
	IsTaskFolder      bool `gorm:"not null;default:false" json:"is_task_folder"`
	IsMeetingFolder   bool `gorm:"not null;default:false" json:"is_meeting_folder"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Folder) TableName() string { return "folders" }
